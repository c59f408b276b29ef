package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DeploymentConfig describes a deployable unit: a pod template plus a rollout
// strategy.
type DeploymentConfig struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec DeploymentConfigSpec `json:"spec"`
}

// DeploymentConfigSpec defines the user-specified configuration of a
// deployment.
type DeploymentConfigSpec struct {
	Replicas int32              `json:"replicas"`
	Selector map[string]string  `json:"selector,omitempty"`
	Template *PodTemplateSpec   `json:"template,omitempty"`
	Strategy DeploymentStrategy `json:"strategy,omitempty"`
}

// DeploymentStrategy selects how a new template is rolled out.
type DeploymentStrategy struct {
	Type string `json:"type,omitempty"` // Rolling, Recreate
}

// NewDeploymentConfig creates a DeploymentConfig with its type metadata
// populated.
func NewDeploymentConfig() *DeploymentConfig {
	return &DeploymentConfig{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindDeploymentConfig)},
	}
}

// GetKind implements Resource.
func (d *DeploymentConfig) GetKind() Kind { return KindDeploymentConfig }

func (d *DeploymentConfig) userSpec() any { return d.Spec }
