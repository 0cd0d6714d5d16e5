package storage

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

var json = sonic.ConfigStd

func (p *DiskStorage) StreamContent(w io.Writer, fileName string) (int64, error) {
	osFileName, _ := p.GetFileName(fileName)
	file, err := os.Open(osFileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return file.WriteTo(w)
}

// WriteFile writes data through a temporary file that is renamed into place.
func (p *DiskStorage) WriteFile(name string, data []byte) error {
	return p.writeAtomic(name, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteStream lets write produce the content of name, the file only appears
// once write has succeeded.
func (p *DiskStorage) WriteStream(name string, write func(w io.Writer) error) error {
	return p.writeAtomic(name, write)
}

// CopyFrom copies the file at src into name.
func (p *DiskStorage) CopyFrom(name string, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	return p.writeAtomic(name, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

func (p *DiskStorage) writeAtomic(name string, write func(w io.Writer) error) error {
	fileName, tmpFileName := p.GetFileName(name)
	if err := p.ensureDir(fileName); err != nil {
		return err
	}
	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	err = write(file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	return p.writeAtomic(filename, func(w io.Writer) error {
		zipWriter := gzip.NewWriter(w)
		if err := json.NewEncoder(zipWriter).Encode(data); err != nil {
			zipWriter.Close()
			return err
		}
		return zipWriter.Close()
	})
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	return json.NewDecoder(zipReader).Decode(data)
}

func (p *DiskStorage) SaveJson(data any, name string) error {
	if strings.HasSuffix(name, ".gz") {
		return p.SaveGzippedJson(data, name)
	}
	return p.writeAtomic(name, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	})
}

// LoadJson decodes a json file, files ending in .gz are decompressed first.
func (p *DiskStorage) LoadJson(data any, filename string) error {
	if strings.HasSuffix(filename, ".gz") {
		return p.LoadGzippedJson(data, filename)
	}
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(data)
}
