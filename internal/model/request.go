package model

// SignRequest identifies a video file by the two segments of GET /{id}/{filename}.
type SignRequest struct {
	FileName string `json:"fileName"`
	ID       string `json:"id"`
}

// ObjectRequest is the JSON body sent to the POST /*-object endpoints.
type ObjectRequest struct {
	Object      string `json:"object"`
	ContentType string `json:"contentType,omitempty"`
}
