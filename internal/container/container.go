// Package container defines the typed data units that modules exchange
// through the run's shared store and streaming registry.
//
// A container is immutable once stored: modules never edit a stored
// container in place, they store a new one. The container type string is
// the key used both for store lookups and for streaming-callback dispatch.
package container

// Well-known container type keys.
const (
	TypeFileArtifact = "file_artifact"
	TypeReport       = "report"
	TypeHost         = "host"
)

// Container is the contract every typed data unit must satisfy.
type Container interface {
	// ContainerType returns the type key under which the container is
	// stored and dispatched.
	ContainerType() string
}

// FileArtifact describes a file collected from a source during a run.
type FileArtifact struct {
	// Path is the local filesystem path of the collected file.
	Path string
	// Description is a human-readable note about the artifact's origin.
	Description string
}

// ContainerType implements Container.
func (f *FileArtifact) ContainerType() string { return TypeFileArtifact }

// Report holds a rendered, human-readable result produced by a module.
type Report struct {
	// ModuleName identifies the module that produced the report.
	ModuleName string
	// Text is the report body.
	Text string
}

// ContainerType implements Container.
func (r *Report) ContainerType() string { return TypeReport }

// Host identifies a machine that a run operates on.
type Host struct {
	Hostname string
}

// ContainerType implements Container.
func (h *Host) ContainerType() string { return TypeHost }
