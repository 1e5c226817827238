package xmlstream

// EventKind identifies the kind of streaming XML event.
type EventKind uint8

const (
	EventStartElement EventKind = iota
	EventEndElement
	EventCharData
)

// String returns a readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStartElement:
		return "start-element"
	case EventEndElement:
		return "end-element"
	case EventCharData:
		return "char-data"
	default:
		return "unknown"
	}
}

// QName is an element name resolved against the in-scope namespaces.
type QName struct {
	Namespace string
	Local     string
}

// String returns the name in Clark notation when it has a namespace.
func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// Event is a single streaming XML token.
// Text is only valid until the next call to Next.
type Event struct {
	Name   QName
	Text   []byte
	Kind   EventKind
	Line   int
	Column int
	Depth  int
}
