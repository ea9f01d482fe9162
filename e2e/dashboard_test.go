//go:build e2e && unix

package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDashboardStartsAndQuits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "dashboard should render")
	require.True(t, tf.SeePlain("1 / 5"), "statistics carousel should start on the first slide")
	require.True(t, tf.SeePlain("2 / 6"), "asset carousel should start on the second item")

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitExit(2*time.Second))

	_, err := os.Stat(tf.StatePath())
	require.NoError(t, err, "seeded portfolio should be persisted")
}

func TestDashboardKeyboardNavigation(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	tf.Reset()
	require.NoError(t, tf.SendKeys(KeyRight))
	if !tf.SeePlain("2 / 5") {
		tf.DumpTail(4096)
		t.Fatal("right arrow should advance the statistics carousel")
	}

	tf.Reset()
	require.NoError(t, tf.SendKeys(KeyTab+KeyLeft))
	require.True(t, tf.SeePlain("1 / 6"), "tab then left should move the asset carousel back")

	tf.Reset()
	require.NoError(t, tf.SendKeys(KeySpace))
	require.True(t, tf.SeePlain("paused"))
}

func TestCtrlCExits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())
	require.NoError(t, tf.SendKeys(KeyCtrlC))
	require.NoError(t, tf.WaitExit(2*time.Second))
}

func TestAdvisorChat(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys("c"))
	require.NoError(t, tf.SendKeys("what is my total"+KeyEnter))
	require.True(t, tf.SeePlain("$14,100"), "advisor should reply with the portfolio total")
}
