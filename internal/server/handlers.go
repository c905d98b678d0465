package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/link"
	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/session"
)

type testSummary struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	QuestionCount int              `json:"questionCount"`
	GenderBased   bool             `json:"genderBased"`
	ScoringType   quiz.ScoringType `json:"scoringType"`
}

func summarize(t *quiz.Test) testSummary {
	return testSummary{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		ImageURL:      t.ImageURL,
		QuestionCount: t.QuestionCount(),
		GenderBased:   t.GenderBased,
		ScoringType:   t.Scoring.Type,
	}
}

func summarizeAll(tests []*quiz.Test) []testSummary {
	out := make([]testSummary, 0, len(tests))
	for _, t := range tests {
		out = append(out, summarize(t))
	}
	return out
}

type optionView struct {
	Letter quiz.Letter `json:"letter"`
	Text   string      `json:"text"`
}

// questionView omits score tables.
type questionView struct {
	Number  int          `json:"number"`
	Text    string       `json:"text"`
	Options []optionView `json:"options"`
}

type answersRequest struct {
	Answers []string `json:"answers" binding:"required"`
	Gender  string   `json:"gender"`
}

type answersResponse struct {
	Data string `json:"data"`
	Link string `json:"link"`
}

type resultView struct {
	quiz.ResultDetail
	AdviceLines []string `json:"adviceLines,omitempty"`
}

type resultResponse struct {
	TestID    string        `json:"testId"`
	Title     string        `json:"title"`
	Gender    quiz.Gender   `json:"gender,omitempty"`
	Key       string        `json:"key"`
	Result    resultView    `json:"result"`
	Total     *int          `json:"total,omitempty"`
	Fallback  bool          `json:"fallback"`
	ShareURL  string        `json:"shareUrl"`
	ShareText string        `json:"shareText"`
	Others    []testSummary `json:"others"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listTests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tests": summarizeAll(s.cat.Tests())})
}

func (s *Server) getTest(c *gin.Context) {
	t, err := s.cat.Test(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"test": summarize(t), "scoring": t.Scoring})
}

func (s *Server) getQuestions(c *gin.Context) {
	id := c.Param("id")
	t, err := s.cat.Test(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	gender := queryGender(c.Query(link.ParamGender))
	content, err := t.Select(gender)
	if err != nil {
		s.fail(c, err)
		return
	}

	views := make([]questionView, len(content.Questions))
	for i, q := range content.Questions {
		opts := make([]optionView, 0, 4)
		for _, l := range q.Choices() {
			opts = append(opts, optionView{Letter: l, Text: q.OptionText(l)})
		}
		views[i] = questionView{Number: i + 1, Text: q.Text, Options: opts}
	}
	c.JSON(http.StatusOK, gin.H{"testId": id, "questions": views})
}

// submitAnswers runs a complete flow statelessly and returns the encoded
// response with its result link.
func (s *Server) submitAnswers(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]quiz.Letter, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = quiz.Letter(strings.ToUpper(strings.TrimSpace(a)))
	}

	comp, err := session.Run(s.cat, c.Param("id"), queryGender(req.Gender), answers,
		session.WithLogger(s.logger))
	if err != nil {
		s.metrics.completions.WithLabelValues("rejected").Inc()
		s.fail(c, err)
		return
	}
	s.metrics.completions.WithLabelValues("completed").Inc()
	c.JSON(http.StatusOK, answersResponse{Data: comp.Encoded, Link: comp.URL(s.baseURL)})
}

func (s *Server) getResult(c *gin.Context) {
	id := c.Param("id")
	data := strings.TrimSpace(c.Query(link.ParamData))
	gender := queryGender(c.Query(link.ParamGender))

	res, err := s.resolve(id, data, gender)
	if err != nil {
		s.metrics.resolutions.WithLabelValues(outcomeOf(err)).Inc()
		s.fail(c, err)
		return
	}
	if res.Fallback {
		s.metrics.resolutions.WithLabelValues(outcomeFallback).Inc()
	} else {
		s.metrics.resolutions.WithLabelValues(outcomeMatched).Inc()
	}

	resp := resultResponse{
		TestID:    res.Test.ID,
		Title:     res.Test.Title,
		Gender:    res.Gender,
		Key:       res.Key,
		Result:    resultView{ResultDetail: res.Detail, AdviceLines: res.Detail.AdviceLines()},
		Fallback:  res.Fallback,
		ShareURL:  link.Build(s.baseURL, link.Link{TestID: res.Test.ID, Data: data, Gender: res.Gender}),
		ShareText: res.ShareText(),
		Others:    summarizeAll(s.cat.Others(res.Test.ID)),
	}
	if res.Test.Scoring.Type == quiz.ScoreRange {
		total := res.Total
		resp.Total = &total
	}
	c.JSON(http.StatusOK, resp)
}

// queryGender normalises a gender parameter without rejecting unknown
// values, so that non-gender tests can ignore them and gender-based tests
// report them as invalid.
func queryGender(raw string) quiz.Gender {
	return quiz.Gender(strings.ToLower(strings.TrimSpace(raw)))
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, quiz.ErrUnknownTest):
		return outcomeUnknownTest
	case errors.Is(err, quiz.ErrMissingGender):
		return outcomeMissingGender
	case errors.Is(err, quiz.ErrInvalidGender):
		return outcomeInvalidGender
	default:
		return outcomeError
	}
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	var oor *session.OutOfRangeError
	switch {
	case errors.Is(err, quiz.ErrUnknownTest):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrMissingGender), errors.Is(err, quiz.ErrInvalidGender):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrInvalidChoice), errors.Is(err, session.ErrIncomplete), errors.As(err, &oor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err), zap.String("request_id", c.GetString(ctxRequestID)))
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
