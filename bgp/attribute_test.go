package bgp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsPathContains(t *testing.T) {
	p := AsPath{Segments: []AsPathSegment{{Type: AsSequence, Asns: []uint16{65001, 65002, 65003}}}}
	assert.True(t, p.Contains(65002))
	assert.False(t, p.Contains(65099))
}

func TestAsPathContainsEmpty(t *testing.T) {
	assert.False(t, AsPath{}.Contains(65001))
}

func TestAsPathPrependOntoEmpty(t *testing.T) {
	p := AsPath{}.Prepend(65001)
	assert.Equal(t, []uint16{65001}, p.Segments[0].Asns)
	assert.Equal(t, AsSequence, p.Segments[0].Type)
}

func TestAsPathPrependOntoExistingSequence(t *testing.T) {
	p := AsPath{Segments: []AsPathSegment{{Type: AsSequence, Asns: []uint16{65002}}}}
	p = p.Prepend(65001)
	assert.Equal(t, []uint16{65001, 65002}, p.Segments[0].Asns)
}

func TestAsPathEqual(t *testing.T) {
	a := AsPath{Segments: []AsPathSegment{{Type: AsSequence, Asns: []uint16{65001}}}}
	b := AsPath{Segments: []AsPathSegment{{Type: AsSequence, Asns: []uint16{65001}}}}
	c := AsPath{Segments: []AsPathSegment{{Type: AsSequence, Asns: []uint16{65002}}}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
