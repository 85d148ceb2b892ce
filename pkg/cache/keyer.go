package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// TagsKey returns the key of a parsed tag list.
	TagsKey(format string, input []byte) string

	// LayoutKey returns the key of a layout of the tag list with the given hash.
	LayoutKey(tagsHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact of the layout with
	// the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes layout output.
type LayoutKeyOpts struct {
	CenterX       int     `json:"center_x"`
	CenterY       int     `json:"center_y"`
	AngleStep     float64 `json:"angle_step"`
	RadiusStep    float64 `json:"radius_step"`
	Compaction    string  `json:"compaction"`
	MaxCandidates int     `json:"max_candidates"`
}

// ArtifactKeyOpts holds every option that changes rendered output.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Palette    string  `json:"palette"`
	Background string  `json:"background"`
	Labels     bool    `json:"labels"`
	Margin     int     `json:"margin"`
	Scale      float64 `json:"scale"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TagsKey returns "tags:<hash>".
func (DefaultKeyer) TagsKey(format string, input []byte) string {
	return hashKey("tags", format, Hash(input))
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(tagsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tagsHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
