package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ScaleGroup keeps a fixed number of pods running from a shared template,
// comparable to a replication controller. Updating a ScaleGroup in place does
// not touch pods spawned from the old template; the engine optionally deletes
// them so they respawn with the new configuration.
type ScaleGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ScaleGroupSpec   `json:"spec"`
	Status ScaleGroupStatus `json:"status,omitempty"`
}

// ScaleGroupSpec defines the user-specified configuration of a scale group.
type ScaleGroupSpec struct {
	Replicas int32             `json:"replicas"`
	Selector map[string]string `json:"selector,omitempty"`
	Template *PodTemplateSpec  `json:"template,omitempty"`
}

// PodTemplateSpec is the pod blueprint embedded in pod-bearing kinds.
type PodTemplateSpec struct {
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec PodSpec `json:"spec"`
}

// ScaleGroupStatus carries server-assigned state. It never participates in
// equality.
type ScaleGroupStatus struct {
	Replicas           int32 `json:"replicas,omitempty"`
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// NewScaleGroup creates a ScaleGroup with its type metadata populated.
func NewScaleGroup() *ScaleGroup {
	return &ScaleGroup{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindScaleGroup)},
	}
}

// GetKind implements Resource.
func (s *ScaleGroup) GetKind() Kind { return KindScaleGroup }

func (s *ScaleGroup) userSpec() any { return s.Spec }

// PodTemplate returns the embedded pod spec, or nil when the group declares
// no template.
func (s *ScaleGroup) PodTemplate() *PodSpec {
	if s.Spec.Template == nil {
		return nil
	}
	return &s.Spec.Template.Spec
}
