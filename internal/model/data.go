package model

// Attribute is a class attribute
type Attribute struct {
	Name       string `json:"name"`
	Visibility string `json:"visibility"`
	Type       string `json:"type"`
}

// Param is a method parameter
type Param struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

// Method is a class operation
type Method struct {
	Name       string  `json:"name"`
	Params     []Param `json:"params"`
	Visibility string  `json:"visibility"`
	ReturnType string  `json:"return_type"`
}

// ClassData is the payload of a Class element. The stereotype is
// "actor" for actors and empty for plain classes.
type ClassData struct {
	Name       string      `json:"name"`
	Stereotype string      `json:"stereotype,omitempty"`
	Attributes []Attribute `json:"attributes"`
	Methods    []Method    `json:"methods"`
}

// RelationshipData is the payload of a Relationship element
type RelationshipData struct {
	From     string  `json:"class_a"`
	To       string  `json:"class_b"`
	Kind     RelKind `json:"type"`
	CardFrom string  `json:"card_a,omitempty"`
	CardTo   string  `json:"card_b,omitempty"`
}

// UseCaseData is the payload of a UseCase element
type UseCaseData struct {
	Name string `json:"name"`
}

// SequenceMessageData is the payload of a SequenceMessage element
type SequenceMessageData struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
}

// ActivityStepData is the payload of an ActivityStep element
type ActivityStepData struct {
	Lane string `json:"lane"`
	Step string `json:"step"`
}

// ComponentData is the payload of a Component element
type ComponentData struct {
	Name       string `json:"name"`
	Stereotype string `json:"stereotype,omitempty"`
	Package    string `json:"parent_package,omitempty"`
}

// InterfaceData is the payload of an Interface element. At most one
// component provides the interface; any number may consume it.
type InterfaceData struct {
	Name      string   `json:"name"`
	Provider  string   `json:"provider,omitempty"`
	Consumers []string `json:"consumers,omitempty"`
}

// NodeData is the payload of a Node or Device element. Children names
// form the containment tree; the tree is kept acyclic by construction.
type NodeData struct {
	Name       string   `json:"name"`
	Stereotype string   `json:"stereotype,omitempty"`
	Artifacts  []string `json:"artifacts,omitempty"`
	Children   []string `json:"children,omitempty"`
}

// ArtifactData is the payload of an Artifact element
type ArtifactData struct {
	Name string `json:"name"`
}

// EnvironmentData is the payload of an Environment element
type EnvironmentData struct {
	Name string `json:"name"`
}
