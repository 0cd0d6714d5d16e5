package messaging

type ChangeTopic string

const (
	// CatalogChanged announces that a new catalog file has been published.
	CatalogChanged ChangeTopic = "catalog_changed"
	Tracking       ChangeTopic = "tracking"
)

type CatalogChange struct {
	File        string `json:"file"`
	GeneratedAt string `json:"generatedAt"`
	Groups      int    `json:"groups"`
}
