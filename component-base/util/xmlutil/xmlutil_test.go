package xmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const notify = `<xml>
<return_code><![CDATA[SUCCESS]]></return_code>
<out_trade_no>u1abc01</out_trade_no>
<detail>
  <goods>book</goods>
  <price>12</price>
</detail>
</xml>`

func TestToMap(t *testing.T) {
	m, err := ToMap([]byte(notify))
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS", m["return_code"])
	assert.Equal(t, "u1abc01", m["out_trade_no"])
	detail, ok := m["detail"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"goods": "book", "price": "12"}, detail)
}

func TestFlatMap(t *testing.T) {
	m, err := FlatMap(strings.NewReader(`<xml><a>1</a><b>two</b><a>3</a></xml>`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3", "b": "two"}, m)
}

func TestInvalidXML(t *testing.T) {
	for _, in := range []string{"", "<xml><a></xml>", "<a/><b/>"} {
		_, err := ToMap([]byte(in))
		assert.True(t, errors.IsCode(err, code.ErrDecodingFailed), "input %q", in)
	}
}
