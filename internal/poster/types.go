package poster

// Request is one poster-generation invocation. StyleIDs, SizeKey, and
// Provider are optional; empty values select the whole catalog, the default
// size, and the default provider respectively.
type Request struct {
	EventInfo string
	StyleIDs  []string
	SizeKey   string
	Provider  string
	Locale    string
}

// Outcome records whether generation succeeded for one style. ImageData holds
// the base64-encoded bytes for inline embedding in content blocks; it is
// excluded from the details payload to bound its size.
type Outcome struct {
	StyleID    string `json:"style_id"`
	StyleName  string `json:"style_name"`
	OutputPath string `json:"output_path,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	MIME       string `json:"mime_type,omitempty"`
	ImageData  string `json:"-"`
}

// ContentBlock is one entry of the mixed text/image response sequence: the
// summary text first, then one image block per successful style.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Data string `json:"data,omitempty"`
	MIME string `json:"mime_type,omitempty"`
}

// Details is the structured companion to the content blocks, with image bytes
// stripped from the per-style results.
type Details struct {
	OutputDir  string    `json:"output_dir"`
	Size       Size      `json:"size"`
	Results    []Outcome `json:"results"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
}

// Result is the full return value of one generation run.
type Result struct {
	Content []ContentBlock `json:"content"`
	Details Details        `json:"details"`
}

// Notifier receives incremental progress during a run: one notification per
// attempted style, emitted before that style's provider call begins.
type Notifier interface {
	Progress(index, total int, styleName string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(index, total int, styleName string)

// Progress implements Notifier.
func (f NotifierFunc) Progress(index, total int, styleName string) {
	f(index, total, styleName)
}
