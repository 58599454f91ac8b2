package model

// Go models matching cv.schema.json, decoded straight from the YAML document.
// The record is rebuilt from the stored document on every request; nothing
// here is cached between requests.

type Meta struct {
	OutputFilename string `yaml:"output_filename,omitempty"`
	PDFTitle       string `yaml:"pdf_title,omitempty"`
}

type Header struct {
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	Photo        string `yaml:"photo,omitempty"`
	ContactLine1 string `yaml:"contact_line1,omitempty"`
	ContactLine2 string `yaml:"contact_line2,omitempty"`
}

type Job struct {
	Company string `yaml:"company"`
	Period  string `yaml:"period"`
	// Highlight nil means no highlight decoration at all; this is distinct
	// from an empty string, which still renders the marker.
	Highlight *string  `yaml:"highlight,omitempty"`
	Bullets   []string `yaml:"bullets,omitempty"`
}

type Skill struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Detail      string `yaml:"detail,omitempty"`
}

type CVRecord struct {
	Meta       Meta        `yaml:"meta,omitempty"`
	Header     Header      `yaml:"header"`
	Profile    string      `yaml:"profile,omitempty"`
	Experience []Job       `yaml:"experience,omitempty"`
	Skills     []Skill     `yaml:"skills,omitempty"`
	Education  []Education `yaml:"education,omitempty"`
}

// Title returns the PDF document title, falling back to the person's name.
func (r *CVRecord) Title() string {
	if r.Meta.PDFTitle != "" {
		return r.Meta.PDFTitle
	}
	return r.Header.Name
}

// OutputFilename returns the download filename for the exported PDF.
func (r *CVRecord) OutputFilename() string {
	if r.Meta.OutputFilename != "" {
		return r.Meta.OutputFilename
	}
	return "cv.pdf"
}
