// Package translation resolves English and Korean input into candidate
// translations. Words typed in English are looked up in two public
// translation services and a built-in dictionary of extra verb senses, and
// the results are merged into a short ordered list. Sentences and Korean
// input get a single translation.
package translation
