// Package media stores gallery images outside the artwork catalog:
// banner shots, process photos, anything the admin uploads for the site.
package media

// Item is one uploaded file. URL is the public path clients load it from;
// StoredName is the on-disk filename under the upload directory.
type Item struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	StoredName string `json:"-"`
	URL        string `json:"url"`
	MimeType   string `json:"mimeType"`
	SizeBytes  int64  `json:"sizeBytes"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// MaxUploadBytes caps a single upload at 5 MB.
const MaxUploadBytes = 5 << 20
