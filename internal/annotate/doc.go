// Package annotate turns a parsed English sentence into the grammar view
// shown to learners: token/part-of-speech pairs, a dependency diagram and
// the list of English tenses the sentence uses.
//
// Parsing is delegated to a parser.Parser. The only local logic is the tense
// rule table in tense.go.
package annotate
