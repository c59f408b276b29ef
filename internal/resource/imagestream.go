package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ImageStream tracks a set of related image tags.
type ImageStream struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ImageStreamSpec `json:"spec"`
}

// ImageStreamSpec defines the user-specified configuration of an image
// stream.
type ImageStreamSpec struct {
	Repository string         `json:"repository,omitempty"`
	Tags       []TagReference `json:"tags,omitempty"`
}

// TagReference maps a tag name to the image it points at.
type TagReference struct {
	Name string `json:"name"`
	From string `json:"from,omitempty"`
}

// NewImageStream creates an ImageStream with its type metadata populated.
func NewImageStream() *ImageStream {
	return &ImageStream{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindImageStream)},
	}
}

// GetKind implements Resource.
func (i *ImageStream) GetKind() Kind { return KindImageStream }

func (i *ImageStream) userSpec() any { return i.Spec }
