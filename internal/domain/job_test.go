package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JobReported, JobAcknowledged, true},
		{JobReported, JobCancelled, true},
		{JobReported, JobCompleted, false}, // no fast path past the lifecycle
		{JobReported, JobInProgress, false},
		{JobAcknowledged, JobPendingQuote, true},
		{JobPendingQuote, JobQuoteSubmitted, true},
		{JobQuoteSubmitted, JobAwaitingApproval, true},
		{JobAwaitingApproval, JobInProgress, true},
		{JobInProgress, JobCompleted, true},
		{JobInProgress, JobReported, false},
		{JobCompleted, JobCancelled, false},
		{JobCancelled, JobReported, false},
		{JobAwaitingApproval, JobCancelled, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.True(t, JobCompleted.Terminal())
	assert.True(t, JobCancelled.Terminal())
	assert.False(t, JobReported.Terminal())
	assert.False(t, JobInProgress.Terminal())
}

func TestNoticeStatus_CanTransition(t *testing.T) {
	assert.True(t, NoticeSent.CanTransition(NoticeDelivered))
	assert.True(t, NoticeDelivered.CanTransition(NoticeViewed))
	assert.True(t, NoticeViewed.CanTransition(NoticeActionRequired))
	assert.True(t, NoticeViewed.CanTransition(NoticeResolved))
	assert.True(t, NoticeActionRequired.CanTransition(NoticeResolved))

	assert.False(t, NoticeSent.CanTransition(NoticeResolved))
	assert.False(t, NoticeResolved.CanTransition(NoticeSent))
	assert.False(t, NoticeDelivered.CanTransition(NoticeSent))
}
