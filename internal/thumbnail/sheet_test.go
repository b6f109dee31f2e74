package thumbnail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSheet(t *testing.T) {
	r := NewRenderer(1)
	entries := []Entry{
		{Time: 0, Image: r.TimeBased(0, 60)},
		{Time: 75, Image: r.TimeBased(75, 60)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSheet(&buf, "Big <Buck>", "dark-theme", entries))

	out := buf.String()
	assert.Contains(t, out, `<body class="dark-theme">`)
	assert.Contains(t, out, "Big &lt;Buck&gt;")
	assert.Contains(t, out, `src="data:image/jpeg;base64,`)
	assert.Contains(t, out, "1:15")
	assert.NotContains(t, out, "ZgotmplZ")
}

func TestWriteSheetRejectsBadFrame(t *testing.T) {
	err := WriteSheet(&bytes.Buffer{}, "x", "", []Entry{{Time: 0, Image: "javascript:alert(1)"}})
	assert.ErrorIs(t, err, ErrInvalidDataURI)
}
