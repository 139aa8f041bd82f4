package jsonwc

// CharClass is the category of an input character as far as comment and string
// detection is concerned.
type CharClass uint8

const (
	ClassFSlash CharClass = iota // '/'
	ClassBSlash                  // '\\'
	ClassQuote                   // '"'
	ClassCR                      // '\r'
	ClassNL                      // '\n'
	ClassStar                    // '*'
	ClassOther
	numClasses
)

var classNames = [numClasses]string{
	ClassFSlash: "fslash",
	ClassBSlash: "bslash",
	ClassQuote:  "quote",
	ClassCR:     "cr",
	ClassNL:     "nl",
	ClassStar:   "star",
	ClassOther:  "other",
}

func (c CharClass) String() string {
	if c < numClasses {
		return classNames[c]
	}
	return "CharClass(?)"
}

var asciiClasses = func() (t [128]CharClass) {
	for i := range t {
		t[i] = ClassOther
	}
	t['/'] = ClassFSlash
	t['\\'] = ClassBSlash
	t['"'] = ClassQuote
	t['\r'] = ClassCR
	t['\n'] = ClassNL
	t['*'] = ClassStar
	return t
}()

// Classify returns the class of r. Every rune outside the six delimiters,
// including utf8.RuneError, is ClassOther.
func Classify(r rune) CharClass {
	if r >= 0 && r < 128 {
		return asciiClasses[r]
	}
	return ClassOther
}
