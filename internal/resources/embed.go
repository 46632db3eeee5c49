package resources

import _ "embed"

//go:embed data/stopwords.txt
var embeddedStopwords string

//go:embed data/postwords.txt
var embeddedPostwords string

//go:embed data/patterns.txt
var embeddedPatterns string

//go:embed data/allowed.txt
var embeddedAllowed string
