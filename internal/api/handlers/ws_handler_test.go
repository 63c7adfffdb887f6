package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/websocket"
	"github.com/linskybing/formpilot/internal/domain/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestLiveAnalyticsStream(t *testing.T) {
	m := setupRouter(t)
	f := ownedForm(t, "owner-1")

	m.form.EXPECT().GetFormByID(gomock.Any(), f.ID).Return(f, nil)
	m.events.EXPECT().CountViews(gomock.Any(), f.ID, gomock.Any()).Return(int64(4), nil).AnyTimes()
	m.events.EXPECT().ListInteractions(gomock.Any(), f.ID, gomock.Any()).Return(nil, nil).AnyTimes()
	m.events.EXPECT().ListSubmissions(gomock.Any(), f.ID, gomock.Any()).
		Return([]analytics.Submission{{FormID: f.ID, Device: "mobile"}}, nil).AnyTimes()

	srv := httptest.NewServer(m.router)
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/analytics/"+f.ID+"?period=7d&token="+m.token), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var first analytics.Summary
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, f.ID, first.FormID)
	assert.Equal(t, analytics.Period7d, first.Period)
	assert.Equal(t, int64(4), first.TotalViews)
	assert.InDelta(t, 25.0, first.CompletionRate, 0.001)

	var next analytics.Summary
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, first.TotalViews, next.TotalViews)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

func TestLiveAnalyticsRejectsBeforeUpgrade(t *testing.T) {
	m := setupRouter(t)
	f := ownedForm(t, "someone-else")
	m.form.EXPECT().GetFormByID(gomock.Any(), f.ID).Return(f, nil)

	srv := httptest.NewServer(m.router)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/analytics/"+f.ID+"?token="+m.token), nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, "/ws/analytics/"+f.ID), nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
