package icons

// Extractor flattens font-export documents into icon records.
type Extractor struct {
	prefix  string
	viewBox int
}

// NewExtractor creates an Extractor. Empty prefix and non-positive viewBox fall back to defaults.
func NewExtractor(prefix string, viewBox int) *Extractor {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if viewBox <= 0 {
		viewBox = DefaultViewBox
	}
	return &Extractor{prefix: prefix, viewBox: viewBox}
}

// Extract flattens documents with the default prefix and viewBox.
func Extract(docs []ExportDocument) []Record {
	return NewExtractor(DefaultPrefix, DefaultViewBox).Extract(docs)
}

// Extract flattens every document in order.
func (x *Extractor) Extract(docs []ExportDocument) []Record {
	records := make([]Record, 0)
	for _, doc := range docs {
		records = append(records, x.Document(doc)...)
	}
	return records
}

// Document emits one record per glyph that has at least one tag and one path.
// The record is named after the first tag only; other tags are dropped.
func (x *Extractor) Document(doc ExportDocument) []Record {
	viewBox := x.viewBox
	if doc.Height != nil {
		viewBox = int(*doc.Height)
	}

	records := make([]Record, 0)
	for _, icon := range doc.Icons {
		if len(icon.Tags) == 0 || len(icon.Paths) == 0 {
			continue
		}
		records = append(records, Record{
			Name:    x.prefix + icon.Tags[0],
			Paths:   icon.Paths,
			ViewBox: viewBox,
		})
	}
	return records
}

// FileResult is the outcome of extracting one input file.
// Err is set when the file was skipped; Records is then empty.
type FileResult struct {
	Source  string
	Records []Record
	Err     error
}

// Skipped reports whether the input produced no usable document.
func (r FileResult) Skipped() bool {
	return r.Err != nil
}

// ExtractBytes decodes one font-export document and flattens it.
// Decode failures are returned in the result rather than as an error so a
// batch can carry on with the remaining inputs.
func (x *Extractor) ExtractBytes(source string, data []byte) FileResult {
	doc, err := Decode(data)
	if err != nil {
		return FileResult{Source: source, Err: err}
	}
	return FileResult{Source: source, Records: x.Document(doc)}
}
