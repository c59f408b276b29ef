package bundle

// Standard labels stamped on every resource a bundle produces.
const (
	// LabelBundle identifies the bundle that produced the resource.
	LabelBundle = "konverge.io/bundle"

	// LabelVersion identifies the bundle version.
	LabelVersion = "konverge.io/version"

	// LabelManagedBy identifies the tool managing the resource.
	LabelManagedBy = "konverge.io/managed-by"

	// ManagedByValue is the value used for the managed-by label.
	ManagedByValue = "konverge"
)

// StandardLabels returns the labels stamped on resources of the named
// bundle.
func StandardLabels(name, version string) map[string]string {
	return map[string]string{
		LabelBundle:    name,
		LabelVersion:   version,
		LabelManagedBy: ManagedByValue,
	}
}
