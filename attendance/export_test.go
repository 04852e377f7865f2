package attendance_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmitrymomot/timeclock/attendance"
)

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("empty log table yields ErrNoLogs", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newFixture(t)
		_, _, err := svc.Export(context.Background())
		assert.ErrorIs(t, err, attendance.ErrNoLogs)
	})

	t.Run("workbook carries header and entries", func(t *testing.T) {
		t.Parallel()

		svc, _, now := newFixture(t)
		*now = time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC)
		require.NoError(t, svc.RecordAction(context.Background(), "alice", attendance.ActionStart))
		*now = time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)
		require.NoError(t, svc.RecordAction(context.Background(), "alice", attendance.ActionLeave))

		data, filename, err := svc.Export(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "logs_20250602_173000.xlsx", filename)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Sheet1")
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, []string{"username", "log_date", "start_time", "break_time", "onseat_time", "leave_time"}, rows[0])

		entry := rows[1]
		require.GreaterOrEqual(t, len(entry), 2)
		assert.Equal(t, "alice", entry[0])
		assert.Equal(t, "2025-06-02", entry[1])
		assert.Equal(t, "09:15 AM", entry[2])
		// Trailing blank cells may be trimmed by GetRows.
		assert.Equal(t, "05:30 PM", rows[1][5])
	})

	t.Run("header style applied", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newFixture(t)
		require.NoError(t, svc.RecordAction(context.Background(), "alice", attendance.ActionStart))

		data, _, err := svc.Export(context.Background())
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		styleID, err := f.GetCellStyle("Sheet1", "A1")
		require.NoError(t, err)
		assert.NotZero(t, styleID)
	})
}
