// Package jaccard normalizes combined co-occurrence counts into a
// generalized weighted Jaccard similarity matrix:
//
//	S[i,j] = M[i,j] / (d[i] + d[j] - M[i,j] + ε)
//
// where M is the combined weighted co-occurrence and d the weighted degree.
package jaccard
