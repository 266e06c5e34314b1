package domain

// Upload categories route image files to a bucket or subdirectory.
const (
	CategoryProducts = "products"
	CategoryBlogs    = "blogs"
)

// FileUpload is an image file received from a multipart request, fully
// buffered so a failed managed upload can be retried against local disk.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// StoredImage is the result of an object-store upload: the public URL and
// the backend path needed to delete the object later.
type StoredImage struct {
	URL  string
	Path string
}
