package analyzer

import (
	"strings"
	"unicode"
)

// fleschReadingEase computes the classic Flesch score:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Higher is easier; 60+ reads easily, below 30 is dense.
func fleschReadingEase(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	sentences := sentenceCount(text)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += syllableCount(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// sentenceCount counts terminator runs (. ! ?), treating trailing text
// without a terminator as one more sentence.
func sentenceCount(text string) int {
	count := 0
	inSentence := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if inSentence {
				count++
				inSentence = false
			}
		default:
			if !unicode.IsSpace(r) {
				inSentence = true
			}
		}
	}
	if inSentence {
		count++
	}
	return count
}

// syllableCount estimates syllables by counting vowel groups with a
// silent-e adjustment. Rough, but stable enough for a readability band.
func syllableCount(word string) int {
	var letters []rune
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return 0
	}

	isVowel := func(r rune) bool {
		return strings.ContainsRune("aeiouy", r)
	}

	count := 0
	prevVowel := false
	for _, r := range letters {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	// silent trailing e
	if len(letters) > 2 && letters[len(letters)-1] == 'e' && !isVowel(letters[len(letters)-2]) && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
