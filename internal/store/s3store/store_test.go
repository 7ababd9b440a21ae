package s3store

import "testing"

func TestObjectKey(t *testing.T) {
	cases := map[string]string{
		"scan.pdf":              "attachments/ID/scan.pdf",
		"../../etc/passwd":      "attachments/ID/passwd",
		`C:\Users\ana\exam.png`: "attachments/ID/exam.png",
		"":                      "attachments/ID/file",
	}
	for in, want := range cases {
		if got := ObjectKey("ID", in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}
