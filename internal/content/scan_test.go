package content

import (
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	xhtml := `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <link rel="stylesheet" type="text/css" href="../css/style.css"/>
  <link rel="icon" href="favicon.ico"/>
</head>
<body>
  <img src="../images/photo.jpg" alt="photo"/>
  <img src="inline.png"/>
</body>
</html>`

	res, err := Scan("text/chapter1.xhtml", []byte(xhtml))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if res.Href != "text/chapter1.xhtml" {
		t.Errorf("Href = %q, want %q", res.Href, "text/chapter1.xhtml")
	}

	wantCSS := []string{"css/style.css"}
	if !reflect.DeepEqual(res.Stylesheets, wantCSS) {
		t.Errorf("Stylesheets = %v, want %v", res.Stylesheets, wantCSS)
	}

	wantImages := []string{"images/photo.jpg", "text/inline.png"}
	if !reflect.DeepEqual(res.Images, wantImages) {
		t.Errorf("Images = %v, want %v", res.Images, wantImages)
	}
}

func TestScan_NoReferences(t *testing.T) {
	res, err := Scan("ch1.xhtml", []byte(`<html><body><p>text</p></body></html>`))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(res.Stylesheets) != 0 || len(res.Images) != 0 {
		t.Errorf("references = %v / %v, want none", res.Stylesheets, res.Images)
	}
}

func TestResolveRef(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"sibling", "text", "ch2.xhtml", "text/ch2.xhtml"},
		{"parent directory", "text", "../images/a.png", "images/a.png"},
		{"root file", ".", "style.css", "style.css"},
		{"empty base", "", "style.css", "style.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRef(tt.base, tt.ref); got != tt.want {
				t.Errorf("resolveRef(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
			}
		})
	}
}
