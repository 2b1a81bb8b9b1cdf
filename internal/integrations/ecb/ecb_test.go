package ecb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<gesmes:Sender>
		<gesmes:name>European Central Bank</gesmes:name>
	</gesmes:Sender>
	<Cube>
		<Cube time="2024-03-08">
			<Cube currency="USD" rate="1.0945"/>
			<Cube currency="JPY" rate="161.35"/>
			<Cube currency="INR" rate="90.62"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func TestParse(t *testing.T) {
	t.Run("valid feed", func(t *testing.T) {
		rates, err := parse([]byte(sampleFeed))
		assert.NoError(t, err)
		assert.Equal(t, "2024-03-08", rates.Date)
		assert.Equal(t, "EUR", rates.Base)
		assert.Len(t, rates.Rates, 3)
		assert.Equal(t, 1.0945, rates.Rates["USD"])
		assert.Equal(t, 90.62, rates.Rates["INR"])
	})

	t.Run("not xml", func(t *testing.T) {
		_, err := parse([]byte("not xml at all <<"))
		assert.Error(t, err)
	})

	t.Run("no dated cube", func(t *testing.T) {
		_, err := parse([]byte(`<?xml version="1.0"?><Envelope><Cube></Cube></Envelope>`))
		assert.Error(t, err)
	})
}
