// internal/handlers/forms.go
package handlers

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/swellapp/swell-backend/internal/models"
)

// Multipart decoders: each part is classified by its field name into a known
// scalar or the single binary payload; unknown fields are ignored. A
// malformed scalar fails the whole decode, a missing binary part fails the
// subsequent save step instead.

type ProductUploadForm struct {
	File        *multipart.FileHeader
	Description string
	SellerID    int64
	Price       int64
	MediaType   models.MediaType
	ProductType string
}

type ProfileUploadForm struct {
	Avatar *multipart.FileHeader
	Bio    string
	ID     int64
}

func DecodeProductUploadForm(form *multipart.Form) (*ProductUploadForm, error) {
	result := &ProductUploadForm{}

	for name, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch name {
		case "description":
			result.Description = value
		case "seller_id":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed seller_id %q", value)
			}
			result.SellerID = id
		case "price":
			price, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed price %q", value)
			}
			result.Price = price
		case "media_type":
			result.MediaType = models.MediaType(value)
		case "product_type":
			result.ProductType = value
		}
	}

	if files := form.File["content"]; len(files) > 0 {
		result.File = files[0]
	}

	return result, nil
}

func DecodeProfileUploadForm(form *multipart.Form, defaultBio string) (*ProfileUploadForm, error) {
	result := &ProfileUploadForm{Bio: defaultBio}

	for name, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch name {
		case "bio":
			if value != "" {
				result.Bio = value
			}
		case "id":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed id %q", value)
			}
			result.ID = id
		}
	}

	if files := form.File["avatar"]; len(files) > 0 {
		result.Avatar = files[0]
	}

	return result, nil
}
