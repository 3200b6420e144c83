package yalisp

import (
	"math/bits"
	"strconv"
	"strings"
)

//////////////////////////////////////////////////////////////////////////////////////////////
// This file contains the arbitrary precision unsigned integers that back numeric literals. //
// A BigInt is a little endian slice of 64 bit words. Nothing here needs an integer type    //
// wider than one word: carries are detected by comparison and products are built from half //
// words.                                                                                   //
//////////////////////////////////////////////////////////////////////////////////////////////

type Word = uint64

const (
	WordMax  Word = 1<<64 - 1
	halfBits      = 32
	halfMask Word = 1<<halfBits - 1
)

// BigInt is immutable once built. Every operation returns a fresh value.
type BigInt struct {
	words []Word
}

func NewBigInt(v Word) *BigInt {
	return &BigInt{words: []Word{v}}
}

// bigintFromWords takes ownership of words.
func bigintFromWords(words []Word) *BigInt {
	if len(words) == 0 {
		words = []Word{0}
	}
	return (&BigInt{words: words}).normalize()
}

// Strip the most significant zero words, always keeping one
func (x *BigInt) normalize() *BigInt {
	n := len(x.words)
	for n > 1 && x.words[n-1] == 0 {
		n--
	}
	x.words = x.words[:n]
	return x
}

func (x *BigInt) word(i int) Word {
	if i < len(x.words) {
		return x.words[i]
	}
	return 0
}

// Add returns x + y.
func (x *BigInt) Add(y *BigInt) *BigInt {
	n := len(x.words)
	if len(y.words) > n {
		n = len(y.words)
	}
	result := make([]Word, 0, n+1)

	var carry Word
	for i := 0; i < n || carry > 0; i++ {
		nextX, nextY := x.word(i), y.word(i)
		// On overflow the true sum is BASE + low, and unsigned wraparound leaves low
		result = append(result, nextX+nextY+carry)
		if WordMax-carry >= nextX && WordMax-nextY >= nextX+carry {
			carry = 0
		} else {
			carry = 1
		}
	}

	return bigintFromWords(result)
}

// Mul returns x * y using schoolbook multiplication. Each word product is
// split into a low word placed at i+j and a high word placed at i+j+1, and
// both are folded into the running total with Add.
func (x *BigInt) Mul(y *BigInt) *BigInt {
	r := NewBigInt(0)

	for i, nextX := range x.words {
		for j, nextY := range y.words {
			if nextX == 0 || nextY == 0 {
				continue
			}

			var hi, lo Word
			if nextX > WordMax/nextY {
				hi, lo = mulWords(nextX, nextY)
			} else {
				lo = nextX * nextY
			}

			r = r.Add(placeWord(lo, i+j))
			if hi != 0 {
				r = r.Add(placeWord(hi, i+j+1))
			}
		}
	}

	return r
}

// mulWords returns the double word product of x and y as (hi, lo), built
// from the four half word partial products.
func mulWords(x, y Word) (hi, lo Word) {
	xLo, xHi := x&halfMask, x>>halfBits
	yLo, yHi := y&halfMask, y>>halfBits

	low := xLo * yLo
	mid1 := xHi*yLo + low>>halfBits
	mid2 := xLo*yHi + mid1&halfMask

	hi = xHi*yHi + mid1>>halfBits + mid2>>halfBits
	lo = mid2<<halfBits | low&halfMask
	return hi, lo
}

// placeWord builds the value w * BASE^offset.
func placeWord(w Word, offset int) *BigInt {
	words := make([]Word, offset+1)
	words[offset] = w
	return &BigInt{words: words}
}

func (x *BigInt) Copy() *BigInt {
	words := make([]Word, len(x.words))
	copy(words, x.words)
	return &BigInt{words: words}
}

// Words returns a copy of the stored words, least significant first.
func (x *BigInt) Words() []Word {
	return x.Copy().words
}

func (x *BigInt) IsZero() bool {
	return len(x.words) == 1 && x.words[0] == 0
}

// Uint64 returns the value and whether it fits in a single word.
func (x *BigInt) Uint64() (Word, bool) {
	return x.words[0], len(x.words) == 1
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x *BigInt) Cmp(y *BigInt) int {
	switch {
	case len(x.words) < len(y.words):
		return -1
	case len(x.words) > len(y.words):
		return 1
	}
	for i := len(x.words) - 1; i >= 0; i-- {
		switch {
		case x.words[i] < y.words[i]:
			return -1
		case x.words[i] > y.words[i]:
			return 1
		}
	}
	return 0
}

// 10^19 is the largest power of ten that fits in a word
const (
	decimalChunk       Word = 10000000000000000000
	decimalChunkDigits      = 19
)

// String renders x in base 10.
func (x *BigInt) String() string {
	if len(x.words) == 1 {
		return strconv.FormatUint(x.words[0], 10)
	}

	// Peel off 19 digit chunks, least significant first, then print them reversed
	var chunks []Word
	q := x.Copy()
	for !q.IsZero() {
		var rem Word
		q, rem = q.divWord(decimalChunk)
		chunks = append(chunks, rem)
	}

	var b strings.Builder
	b.WriteString(strconv.FormatUint(chunks[len(chunks)-1], 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		digits := strconv.FormatUint(chunks[i], 10)
		b.WriteString(strings.Repeat("0", decimalChunkDigits-len(digits)))
		b.WriteString(digits)
	}
	return b.String()
}

func (x *BigInt) divWord(d Word) (*BigInt, Word) {
	q := make([]Word, len(x.words))
	var rem Word
	for i := len(x.words) - 1; i >= 0; i-- {
		q[i], rem = bits.Div64(rem, x.words[i], d)
	}
	return bigintFromWords(q), rem
}

// WordString renders the raw words, most significant first.
func (x *BigInt) WordString() string {
	parts := make([]string, len(x.words))
	for i, w := range x.words {
		parts[len(x.words)-1-i] = strconv.FormatUint(w, 10)
	}
	return strings.Join(parts, ",")
}
