package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BuildConfig describes how source is turned into a runnable image.
type BuildConfig struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec BuildConfigSpec `json:"spec"`
}

// BuildConfigSpec defines the user-specified configuration of a build.
type BuildConfigSpec struct {
	Source   BuildSource    `json:"source"`
	Strategy BuildStrategy  `json:"strategy"`
	Output   BuildOutput    `json:"output,omitempty"`
	Triggers []BuildTrigger `json:"triggers,omitempty"`
}

// BuildSource points at the input of a build.
type BuildSource struct {
	Type string     `json:"type"`
	Git  *GitSource `json:"git,omitempty"`
}

// GitSource locates source in a git repository.
type GitSource struct {
	URI string `json:"uri"`
	Ref string `json:"ref,omitempty"`
}

// BuildStrategy selects how the build runs.
type BuildStrategy struct {
	Type string `json:"type"`
}

// BuildOutput names the image a successful build produces.
type BuildOutput struct {
	ImageTag string `json:"imageTag,omitempty"`
}

// BuildTrigger starts a build in response to an event.
type BuildTrigger struct {
	Type   string `json:"type"`
	Secret string `json:"secret,omitempty"`
}

// NewBuildConfig creates a BuildConfig with its type metadata populated.
func NewBuildConfig() *BuildConfig {
	return &BuildConfig{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindBuildConfig)},
	}
}

// GetKind implements Resource.
func (b *BuildConfig) GetKind() Kind { return KindBuildConfig }

func (b *BuildConfig) userSpec() any { return b.Spec }
