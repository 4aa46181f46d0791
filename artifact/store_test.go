package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darkowlzz/expression-toolkit/generator"
)

func TestWriteFormulas(t *testing.T) {
	s := NewMemoryStore("out")

	pairs := generator.New().Range(0, 2)
	assert.Nil(t, s.WriteFormulas(DefaultFormulaFile, pairs))
	assert.True(t, s.Exists("out/result.txt"))

	want := `x10 = x
x20 = X
x11 = (v*t + x)
x21 = (V*t + X)
x12 = ((t^2*q*Q)/(4*p*E*(x-X))-x+2*(v*t + x))
x22 = ((-t^2*q*Q)/(4*p*E*(x-X))-X+2*(V*t + X))
`
	got, err := s.Read(DefaultFormulaFile)
	assert.Nil(t, err)
	assert.Equal(t, want, string(got))

	// A second run overwrites the file.
	assert.Nil(t, s.WriteFormulas(DefaultFormulaFile, pairs[:1]))
	got, err = s.Read(DefaultFormulaFile)
	assert.Nil(t, err)
	assert.Equal(t, "x10 = x\nx20 = X\n", string(got))
}

func TestCreate(t *testing.T) {
	s := NewMemoryStore("images")

	w, err := s.Create("tree1.png")
	assert.Nil(t, err)
	_, err = w.Write([]byte("png"))
	assert.Nil(t, err)
	assert.Nil(t, w.Close())

	assert.True(t, s.IsDir("images"))
	got, err := s.Read("tree1.png")
	assert.Nil(t, err)
	assert.Equal(t, "png", string(got))

	_, err = s.Read("missing.png")
	assert.NotNil(t, err)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "result.txt", NewMemoryStore("").Path("result.txt"))
	assert.Equal(t, "out/tree2.png", NewMemoryStore("out").Path("tree2.png"))
}

func TestImageName(t *testing.T) {
	assert.Equal(t, "tree3.png", ImageName("", 3))
	assert.Equal(t, "expr-01.png", ImageName("expr-%02d.png", 1))
}

func TestCheckImagePattern(t *testing.T) {
	cases := []struct {
		pattern string
		valid   bool
	}{
		{pattern: "", valid: true},
		{pattern: "tree%d.png", valid: true},
		{pattern: "expr-%02d.png", valid: true},
		{pattern: "tree.png"},
		{pattern: "tree%d-%d.png"},
		{pattern: "tree%s.png"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.pattern, func(t *testing.T) {
			err := CheckImagePattern(tc.pattern)
			assert.Equal(t, tc.valid, err == nil, "error: %v", err)
		})
	}
}

func TestDiskStore(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir + "/nested")
	assert.Nil(t, s.WriteFormulas("f.txt", generator.New().Range(0, 0)))

	got, err := s.Read("f.txt")
	assert.Nil(t, err)
	assert.Equal(t, "x10 = x\nx20 = X\n", string(got))
}
