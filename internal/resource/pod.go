package resource

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Pod is a single scheduled workload. Its spec embeds the volume definitions
// that the dependency validator inspects before creation.
type Pod struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   PodSpec   `json:"spec"`
	Status PodStatus `json:"status,omitempty"`
}

// PodSpec defines the user-specified configuration of a pod.
type PodSpec struct {
	Containers         []Container `json:"containers"`
	Volumes            []Volume    `json:"volumes,omitempty"`
	RestartPolicy      string      `json:"restartPolicy,omitempty"` // Always, OnFailure, Never
	ServiceAccountName string      `json:"serviceAccountName,omitempty"`
	NodeSelector       map[string]string `json:"nodeSelector,omitempty"`
}

// Container is a single container within a pod spec.
type Container struct {
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Command      []string        `json:"command,omitempty"`
	Args         []string        `json:"args,omitempty"`
	WorkingDir   string          `json:"workingDir,omitempty"`
	Env          []EnvVar        `json:"env,omitempty"`
	Ports        []ContainerPort `json:"ports,omitempty"`
	VolumeMounts []VolumeMount   `json:"volumeMounts,omitempty"`
}

// EnvVar is a name/value pair exposed to a container's environment.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// ContainerPort declares a port a container listens on.
type ContainerPort struct {
	Name          string `json:"name,omitempty"`
	ContainerPort int32  `json:"containerPort"`
	Protocol      string `json:"protocol,omitempty"`
}

// VolumeMount mounts a named volume into a container.
type VolumeMount struct {
	Name      string `json:"name"`
	MountPath string `json:"mountPath"`
	ReadOnly  bool   `json:"readOnly,omitempty"`
}

// Volume is a named volume available to the containers of a pod. Exactly one
// source should be set.
type Volume struct {
	Name     string                `json:"name"`
	Secret   *SecretVolumeSource   `json:"secret,omitempty"`
	HostPath *HostPathVolumeSource `json:"hostPath,omitempty"`
	EmptyDir *EmptyDirVolumeSource `json:"emptyDir,omitempty"`
}

// SecretVolumeSource mounts a named Secret as a volume. The referenced secret
// must exist before the enclosing pod may be created.
type SecretVolumeSource struct {
	SecretName string `json:"secretName"`
}

// HostPathVolumeSource mounts a path from the host.
type HostPathVolumeSource struct {
	Path string `json:"path"`
}

// EmptyDirVolumeSource is an ephemeral scratch volume.
type EmptyDirVolumeSource struct{}

// PodStatus carries server-assigned state. It never participates in equality.
type PodStatus struct {
	Phase   string `json:"phase,omitempty"`
	Message string `json:"message,omitempty"`
	HostIP  string `json:"hostIP,omitempty"`
	PodIP   string `json:"podIP,omitempty"`
}

// NewPod creates a Pod with its type metadata populated.
func NewPod() *Pod {
	return &Pod{
		TypeMeta: metav1.TypeMeta{APIVersion: APIVersion, Kind: string(KindPod)},
	}
}

// GetKind implements Resource.
func (p *Pod) GetKind() Kind { return KindPod }

func (p *Pod) userSpec() any { return p.Spec }
