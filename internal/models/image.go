package models

// Image is a binary payload embedded in a product or review record.
type Image struct {
	Data        []byte `json:"data" bson:"data"`
	ContentType string `json:"contentType" bson:"contentType"`
}

// EncodedImage is the read-side form of Image: Data holds a data URI.
type EncodedImage struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
}
