package jsonwc

import "fmt"

// State is the scanner's position relative to strings and comments.
type State uint8

const (
	StateDefault          State = iota // outside strings and comments
	StateCommentIntro                  // saw '/', not yet known to open a comment
	StateLineComment                   // inside '//'
	StateBlockComment                  // inside '/*'
	StateBlockCommentStar              // inside '/*', just saw '*'
	StateString                        // inside '"'
	StateStringEscape                  // inside '"', just saw '\\'
	numStates
)

var stateNames = [numStates]string{
	StateDefault:          "default",
	StateCommentIntro:     "comment-intro",
	StateLineComment:      "line-comment",
	StateBlockComment:     "block-comment",
	StateBlockCommentStar: "block-comment-star",
	StateString:           "string",
	StateStringEscape:     "string-escape",
}

func (s State) String() string {
	if s < numStates {
		return stateNames[s]
	}
	return "State(?)"
}

// Action is what the scanner writes for one input character.
type Action uint8

const (
	EmitNothing           Action = iota
	EmitCurrent                  // the character itself
	EmitFSlashThenCurrent        // the withheld '/' and then the character
	EmitOneSpace
	EmitTwoSpaces
	numActions
)

var actionNames = [numActions]string{
	EmitNothing:           "emit-nothing",
	EmitCurrent:           "emit-current",
	EmitFSlashThenCurrent: "emit-fslash-then-current",
	EmitOneSpace:          "emit-one-space",
	EmitTwoSpaces:         "emit-two-spaces",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "Action(?)"
}

type transition struct {
	action Action
	next   State
}

type rule struct {
	state State
	class CharClass
	transition
}

// rules lists only the combinations that differ from the state's ClassOther
// entry; buildTable fills in the rest.
var rules = []rule{
	{StateDefault, ClassFSlash, transition{EmitNothing, StateCommentIntro}},
	{StateDefault, ClassQuote, transition{EmitCurrent, StateString}},
	{StateDefault, ClassOther, transition{EmitCurrent, StateDefault}},

	{StateCommentIntro, ClassFSlash, transition{EmitTwoSpaces, StateLineComment}},
	{StateCommentIntro, ClassStar, transition{EmitTwoSpaces, StateBlockComment}},
	{StateCommentIntro, ClassOther, transition{EmitFSlashThenCurrent, StateDefault}},

	{StateLineComment, ClassCR, transition{EmitCurrent, StateLineComment}},
	{StateLineComment, ClassNL, transition{EmitCurrent, StateDefault}},
	{StateLineComment, ClassOther, transition{EmitOneSpace, StateLineComment}},

	{StateBlockComment, ClassCR, transition{EmitCurrent, StateBlockComment}},
	{StateBlockComment, ClassNL, transition{EmitCurrent, StateBlockComment}},
	{StateBlockComment, ClassStar, transition{EmitOneSpace, StateBlockCommentStar}},
	{StateBlockComment, ClassOther, transition{EmitOneSpace, StateBlockComment}},

	{StateBlockCommentStar, ClassFSlash, transition{EmitOneSpace, StateDefault}},
	{StateBlockCommentStar, ClassCR, transition{EmitCurrent, StateBlockComment}},
	{StateBlockCommentStar, ClassNL, transition{EmitCurrent, StateBlockComment}},
	{StateBlockCommentStar, ClassStar, transition{EmitOneSpace, StateBlockCommentStar}},
	{StateBlockCommentStar, ClassOther, transition{EmitOneSpace, StateBlockComment}},

	{StateString, ClassBSlash, transition{EmitCurrent, StateStringEscape}},
	{StateString, ClassQuote, transition{EmitCurrent, StateDefault}},
	{StateString, ClassOther, transition{EmitCurrent, StateString}},

	{StateStringEscape, ClassOther, transition{EmitCurrent, StateString}},
}

var table = buildTable(rules)

// buildTable expands rs into a dense table. It panics when a state has no
// ClassOther rule or a combination is listed twice.
func buildTable(rs []rule) (t [numStates][numClasses]transition) {
	var set [numStates][numClasses]bool
	for _, r := range rs {
		if r.state >= numStates || r.class >= numClasses || r.action >= numActions || r.next >= numStates {
			panic(fmt.Sprintf("jsonwc: transition rule out of range: %v", r))
		}
		if set[r.state][r.class] {
			panic(fmt.Sprintf("jsonwc: duplicate transition for (%s, %s)", r.state, r.class))
		}
		set[r.state][r.class] = true
		t[r.state][r.class] = r.transition
	}
	for s := State(0); s < numStates; s++ {
		if !set[s][ClassOther] {
			panic(fmt.Sprintf("jsonwc: state %s has no fallback transition", s))
		}
		for c := CharClass(0); c < numClasses; c++ {
			if !set[s][c] {
				t[s][c] = t[s][ClassOther]
			}
		}
	}
	return t
}

// Transition reports the action and next state for a character of class c
// read in state s.
func Transition(s State, c CharClass) (Action, State) {
	tr := table[s][c]
	return tr.action, tr.next
}
