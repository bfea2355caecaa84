package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamdock-hub/go-streamdock/catalog"
	"github.com/streamdock-hub/go-streamdock/transport"
)

type fakeHIDDevice struct {
	writes [][]byte
	closed bool
}

func (f *fakeHIDDevice) Write(data []byte) (int, error) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.writes = append(f.writes, cp)
	return len(data), nil
}

func (f *fakeHIDDevice) ReadTimeout(buf []byte, timeoutMs int) (int, error) {
	return 0, nil
}

func (f *fakeHIDDevice) Close() error {
	f.closed = true
	return nil
}

func TestBindStartsAndClosesCleanly(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001)
	require.True(t, ok)

	fake := &fakeHIDDevice{}
	tr := transport.New(fake, transport.Options{
		ReportID: d.ReportID,
		Sizes:    transport.ReportSizes{Input: d.InputReport, Output: d.OutputReport},
	})

	dev := Bind("test-path", "serial-1", d, "1.0.0", tr, Policy{
		HeartbeatInterval:   1,
		SchedulerTickMillis: 5,
	})

	assert.True(t, dev.CanWrite())
	assert.NoError(t, dev.SetKeyBrightness(50))

	time.Sleep(20 * time.Millisecond) // let the scheduler loop tick at least once; the 1s heartbeat does not fire yet

	require.NoError(t, dev.Close())
	assert.True(t, fake.closed)
}

func TestClearKeyRejectsOutOfRangeIndex(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001)
	require.True(t, ok)
	fake := &fakeHIDDevice{}
	tr := transport.New(fake, transport.Options{
		ReportID: d.ReportID,
		Sizes:    transport.ReportSizes{Input: d.InputReport, Output: d.OutputReport},
	})
	dev := Bind("p", "s", d, "", tr, Policy{})
	defer dev.Close()

	err := dev.ClearKey(999)
	assert.Error(t, err)
}

// outOfRange must union the primary key range with the second-screen
// range, not just check the primary range — exercised here with a
// synthetic descriptor whose second-screen keys fall entirely outside
// the primary grid, a shape no current catalog model happens to use.
func TestOutOfRangeUnionsPrimaryAndSecondScreenRanges(t *testing.T) {
	dev := &Device{
		descriptor: catalog.Descriptor{
			Geometry: catalog.Geometry{KeyCount: 6},
		},
		capabilities: catalog.Capabilities{
			HasSecondScreen:    true,
			SecondScreenMinKey: 20,
			SecondScreenMaxKey: 22,
		},
	}

	assert.False(t, dev.outOfRange(3))  // inside primary
	assert.False(t, dev.outOfRange(21)) // inside second-screen range only
	assert.True(t, dev.outOfRange(10))  // between the two ranges
	assert.True(t, dev.outOfRange(30))  // past both ranges

	dev.capabilities.HasSecondScreen = false
	assert.True(t, dev.outOfRange(21)) // second-screen range ignored when unsupported
}

func TestLedOperationsRejectedOnModelWithoutRGB(t *testing.T) {
	d, ok := catalog.Lookup(0x6602, 0x1001) // N4 has no RGB LEDs
	require.True(t, ok)
	fake := &fakeHIDDevice{}
	tr := transport.New(fake, transport.Options{
		ReportID: d.ReportID,
		Sizes:    transport.ReportSizes{Input: d.InputReport, Output: d.OutputReport},
	})
	dev := Bind("p", "s", d, "", tr, Policy{})
	defer dev.Close()

	assert.Error(t, dev.SetLedBrightness(50))
}
