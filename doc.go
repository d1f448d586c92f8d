// Package sbd splits Spanish text into sentences.
//
// Segmentation runs over the tokens produced by the tokenizer package. A
// boundary candidate is a sentence-final mark ("." "?" "!" or an ellipsis),
// or a period/abbreviation followed by a capitalized word that the
// classifier does not consider a proper noun. Candidates found while a
// quote, bracket or inverted mark is still open are deferred until it
// closes. A line break always ends the current sentence.
//
// # Quick Start
//
//	c, err := classifier.LoadFile("spanish.pb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	seg := sbd.New(c)
//	for _, s := range seg.Segment("Aquí está mí primera frase. Aquí está la segunda.") {
//	    fmt.Println(s)
//	}
//
// # Classifier
//
// The classifier supplies the abbreviation and proper-noun evidence. It is
// trained once (see classifier.Classifier.Train) and persisted; segmentation
// only reads it. Passing a nil classifier makes every call train a
// throwaway classifier on its own input, which works for long documents but
// is unreliable for short ones.
//
// # Thread Safety
//
// Segmenter is safe for concurrent use. SegmentAll fans documents out over a
// bounded worker group, configurable via WithConcurrency.
package sbd
