package query

// Kind classifies a query-layer failure by the stage that produced it.
type Kind uint8

const (
	// KindConstruction means the engine could not build a query object
	// from the supplied mesh data.
	KindConstruction Kind = iota + 1
	// KindPoint means a nearest-polygon or closest-point lookup failed,
	// including the valid "no polygon in range" outcome.
	KindPoint
	// KindPath means the corridor query failed or came back empty.
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindConstruction:
		return "create query error"
	case KindPoint:
		return "find point error"
	case KindPath:
		return "find path error"
	}
	return "query error"
}

// Error carries the failure stage and the engine-supplied diagnostic text.
// The diagnostic is copied at the engine seam, so it stays valid after the
// engine call that produced it returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Diagnostics for the two ordinary not-found outcomes. They share their
// kind with engine-level failures and are told apart by message, so the
// helpers below are the supported way to detect them.
const (
	msgNoPolyFound = "No poly found"
	msgNoPath      = "No Path"
	msgReleased    = "query has been released"
)

// IsNoPolyFound reports whether err says no polygon was found within the
// search radius. This is a valid "nothing nearby" outcome, not an engine
// malfunction.
func IsNoPolyFound(err error) bool {
	qe, ok := err.(*Error)
	return ok && qe.Kind == KindPoint && qe.Msg == msgNoPolyFound
}

// IsNoPath reports whether err says the corridor query succeeded but found
// no route between the endpoints.
func IsNoPath(err error) bool {
	qe, ok := err.(*Error)
	return ok && qe.Kind == KindPath && qe.Msg == msgNoPath
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}
