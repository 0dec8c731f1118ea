package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/daily-mystery/internal/models"
)

func TestSubmitMystery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.realm.SubmitMystery(ctx, testSession, "alice", "alice", models.SubmitMysteryRequest{
		Answer:   "  never gonna give you up ",
		Category: " movie quote",
		Hints:    []string{" a song ", "", "   ", "1987"},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "Mystery submitted successfully! Community will vote on it.", resp.Message)
	require.NotNil(t, resp.Submission)
	sub := resp.Submission
	assert.Contains(t, sub.ID, "sub_")
	assert.Equal(t, "NEVER GONNA GIVE YOU UP", sub.Answer)
	assert.Equal(t, "movie quote", sub.Category)
	assert.Equal(t, "Movie Quote", sub.MatchedCategory)
	assert.Equal(t, []string{"a song", "1987"}, sub.Hints)
	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.Equal(t, 0, sub.Votes)
	require.Len(t, resp.NewAchievements, 1)
	assert.Equal(t, "mystery_maker", resp.NewAchievements[0].ID)

	u := f.user(t, "alice")
	assert.Equal(t, 1, u.MysteriesSubmitted)
	assert.True(t, u.HasAchievement("mystery_maker"))

	events, err := f.realm.ListActivity(ctx, testSession, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.ActivitySubmission, events[0].Type)
	assert.Equal(t, `submitted a mystery in "movie quote"`, events[0].Message)
}

func TestSubmitMysteryValidation(t *testing.T) {
	cases := map[string]models.SubmitMysteryRequest{
		"missing answer":   {Answer: "  ", Category: "Movie Quote", Hints: []string{"hint"}},
		"missing category": {Answer: "HELLO", Category: "", Hints: []string{"hint"}},
		"no hints":         {Answer: "HELLO", Category: "Movie Quote"},
		"blank hints":      {Answer: "HELLO", Category: "Movie Quote", Hints: []string{" ", ""}},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			resp, err := f.realm.SubmitMystery(context.Background(), testSession, "alice", "alice", req)
			require.NoError(t, err)

			assert.False(t, resp.Success)
			assert.Equal(t, KindValidation, resp.Kind)
			assert.NotEmpty(t, resp.Message)

			list, err := f.realm.ListSubmissions(context.Background(), testSession, "alice")
			require.NoError(t, err)
			assert.Empty(t, list.Submissions)
		})
	}
}

func TestWeeklySubmissionLimit(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		assert.True(t, f.submit(t, "alice", i).Success)
	}

	resp := f.submit(t, "alice", 3)
	assert.False(t, resp.Success)
	assert.Equal(t, KindRateLimited, resp.Kind)
	assert.Equal(t, "You can only submit 3 mysteries per week. Try again next week!", resp.Message)
	assert.Equal(t, 3, f.user(t, "alice").MysteriesSubmitted)

	// other users have their own allowance
	assert.True(t, f.submit(t, "bob", 0).Success)

	// Sunday to Monday starts a new ISO week
	f.clock.Advance(24 * time.Hour)
	assert.True(t, f.submit(t, "alice", 4).Success)
}

func TestVoteMystery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub := f.submit(t, "bob", 0).Submission
	require.NotNil(t, sub)

	resp, err := f.realm.VoteMystery(ctx, testSession, "alice", "alice", sub.ID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.NewVoteCount)
	assert.Equal(t, "Vote recorded! Thanks for participating.", resp.Message)

	again, err := f.realm.VoteMystery(ctx, testSession, "alice", "alice", sub.ID)
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, KindConflict, again.Kind)
	assert.Equal(t, "You already voted for this mystery!", again.Message)

	list, err := f.realm.ListSubmissions(ctx, testSession, "alice")
	require.NoError(t, err)
	require.Len(t, list.Submissions, 1)
	assert.Equal(t, 1, list.Submissions[0].Votes)
	assert.Equal(t, []string{"alice"}, list.Submissions[0].Voters)
	assert.Equal(t, 4, list.UserVotesRemaining)

	u := f.user(t, "alice")
	assert.Equal(t, 1, u.VotesUsed)
	assert.Equal(t, 1, u.TotalVotesEver)
	assert.Equal(t, "2024-03-10", u.LastVoteDate)
}

func TestVoteUnknownSubmission(t *testing.T) {
	f := newFixture(t)

	resp, err := f.realm.VoteMystery(context.Background(), testSession, "alice", "alice", "sub_missing")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, KindConflict, resp.Kind)
	assert.Equal(t, "Submission not found", resp.Message)

	blank, err := f.realm.VoteMystery(context.Background(), testSession, "alice", "alice", " ")
	require.NoError(t, err)
	assert.Equal(t, KindValidation, blank.Kind)
}

func TestDailyVoteLimitResetsNextDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 7; i++ {
		sub := f.submit(t, fmt.Sprintf("author%d", i), i).Submission
		require.NotNil(t, sub)
		ids = append(ids, sub.ID)
	}

	for i := 0; i < 5; i++ {
		resp, err := f.realm.VoteMystery(ctx, testSession, "alice", "alice", ids[i])
		require.NoError(t, err)
		require.True(t, resp.Success, resp.Message)
	}

	resp, err := f.realm.VoteMystery(ctx, testSession, "alice", "alice", ids[5])
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, KindRateLimited, resp.Kind)
	assert.Equal(t, "You've used all 5 votes today. Come back tomorrow!", resp.Message)

	left, err := f.realm.Submissions().VotesRemaining(ctx, testSession, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	f.clock.Advance(24 * time.Hour)

	left, err = f.realm.Submissions().VotesRemaining(ctx, testSession, "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, left)

	resp, err = f.realm.VoteMystery(ctx, testSession, "alice", "alice", ids[5])
	require.NoError(t, err)
	assert.True(t, resp.Success)

	u := f.user(t, "alice")
	assert.Equal(t, 1, u.VotesUsed)
	assert.Equal(t, 6, u.TotalVotesEver)
}

func TestVoterAchievement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.init(t, "alice")
	u := f.user(t, "alice")
	u.TotalVotesEver = 9
	require.NoError(t, f.realm.Users().Save(ctx, testSession, u))

	sub := f.submit(t, "bob", 0).Submission
	resp, err := f.realm.VoteMystery(ctx, testSession, "alice", "alice", sub.ID)
	require.NoError(t, err)
	require.Len(t, resp.NewAchievements, 1)
	assert.Equal(t, "democratic_voter", resp.NewAchievements[0].ID)
}

func TestTopSubmissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.submit(t, "author_a", 0).Submission
	b := f.submit(t, "author_b", 1).Submission
	c := f.submit(t, "author_c", 2).Submission
	d := f.submit(t, "author_d", 3).Submission

	vote := func(user, id string) {
		resp, err := f.realm.VoteMystery(ctx, testSession, user, user, id)
		require.NoError(t, err)
		require.True(t, resp.Success)
	}
	vote("v1", c.ID)
	vote("v2", c.ID)
	vote("v1", a.ID)
	vote("v1", d.ID)

	top, err := f.realm.Submissions().Top(ctx, testSession, 10)
	require.NoError(t, err)

	var order []string
	for _, s := range top {
		order = append(order, s.ID)
	}
	assert.Equal(t, []string{c.ID, a.ID, d.ID, b.ID}, order)

	top, err = f.realm.Submissions().Top(ctx, testSession, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestActivityLogKeepsNewestFifty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		_, err := f.realm.Activity().RecordActivity(ctx, testSession, models.ActivityGuess, "alice", fmt.Sprintf("event %d", i), "🤔")
		require.NoError(t, err)
	}

	events, err := f.realm.ListActivity(ctx, testSession, 100)
	require.NoError(t, err)
	require.Len(t, events, 50)
	assert.Equal(t, "event 59", events[0].Message)
	assert.Equal(t, "event 10", events[49].Message)
	assert.Contains(t, events[0].ID, "evt_")
	assert.Len(t, f.publisher.Events(), 60)

	recent, err := f.realm.ListActivity(ctx, testSession, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}
