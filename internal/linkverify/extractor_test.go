package linkverify

import (
	"strings"
	"testing"
)

func TestExtractLinksFromReader(t *testing.T) {
	doc := `<!DOCTYPE html><html><head><link rel="stylesheet" href="/style.css"></head>
<body><a href="../gameobjects/2.html">Old <b>Town</b></a><a href="#">N/A</a><img src="x.png" alt="X"><a>no href</a></body></html>`

	links, err := ExtractLinksFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(links) != 4 {
		t.Fatalf("len(links)=%d, want 4", len(links))
	}
	if links[0].Tag != "link" || links[0].URL != "/style.css" || links[0].Text != "stylesheet" {
		t.Fatalf("unexpected first link: %+v", links[0])
	}
	if links[1].URL != "../gameobjects/2.html" || links[1].Text != "OldTown" {
		t.Fatalf("unexpected anchor: %+v", links[1])
	}
	if links[3].Tag != "img" || links[3].Attribute != "src" || links[3].Text != "X" {
		t.Fatalf("unexpected image: %+v", links[3])
	}
}

func TestShouldVerifyLink(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"#", false},
		{"#section", false},
		{"", false},
		{"mailto:someone@example.com", false},
		{"javascript:void(0)", false},
		{"https://example.com/page.html", false},
		{"//cdn.example.com/x.js", false},
		{"../gameobjects/1.html", true},
		{"/gameobjects/1.html", true},
		{"index.html", true},
	}
	for _, tt := range tests {
		if got := ShouldVerifyLink(&Link{URL: tt.url}); got != tt.want {
			t.Errorf("ShouldVerifyLink(%q)=%v, want %v", tt.url, got, tt.want)
		}
	}
}
