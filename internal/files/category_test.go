package files

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		mime string
		name string
		want Category
	}{
		{"image/png", "", CategoryImage},
		{"video/mp4", "clip.bin", CategoryMedia},
		{"audio/ogg", "", CategoryMedia},
		{"", "movie.MKV", CategoryMedia},
		{"", "song.flac", CategoryMedia},
		{"", "vector.svg", CategoryImage},
		{"", "Photo.JPEG", CategoryImage},
		{"", "readme", CategoryDocument},
		{"application/zip", "archive.zip", CategoryDocument},
		{"application/octet-stream", "picture.webp", CategoryImage},
		{"", "archive.tar.gz", CategoryDocument},
		{"", "trailingdot.", CategoryDocument},
		{"", "", CategoryDocument},
		{"text/plain", "notes.mp3", CategoryMedia},
	}
	for _, tc := range cases {
		if got := Classify(tc.mime, tc.name); got != tc.want {
			t.Fatalf("Classify(%q, %q) = %q, want %q", tc.mime, tc.name, got, tc.want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	mimes := []string{"", "image", "video/x", "audio/y", "application/pdf", "IMAGE/PNG"}
	names := []string{"", "a", "a.", ".png", "b.mp4", "c.DOCX", "d.tiff"}
	for _, m := range mimes {
		for _, n := range names {
			switch Classify(m, n) {
			case CategoryImage, CategoryMedia, CategoryDocument:
			default:
				t.Fatalf("Classify(%q, %q) returned an unknown category", m, n)
			}
		}
	}
}

func TestCategoryTitle(t *testing.T) {
	if got := CategoryMedia.Title(); got != "Media" {
		t.Fatalf("expected Media, got %q", got)
	}
}
