package sink

import "github.com/matzehuels/tagcloud/pkg/cloud"

// RenderJSON renders the layout document.
func RenderJSON(l cloud.Layout) ([]byte, error) {
	return cloud.Marshal(l)
}
