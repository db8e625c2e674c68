package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/interviz/internal/coach"
	"github.com/abhisek/interviz/internal/evaluator"
)

type questionReq struct {
	Category string `json:"category"`
}

type answerReq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GetQuestion serves the next question for the caller in a category and
// refreshes the identity cookie.
func (s *Server) GetQuestion(c *gin.Context) {
	userID, _ := ensureUser(c)
	s.setUserCookie(c, userID)

	var req questionReq
	// A missing or malformed body is treated as an empty request.
	_ = c.ShouldBindJSON(&req)

	res, err := s.coach.RequestQuestion(c.Request.Context(), userID, req.Category)
	if err != nil {
		var ve *coach.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing category."})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not select a question."})
		return
	}

	if res.Message != "" {
		c.JSON(http.StatusOK, gin.H{"message": res.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": res.Question})
}

// SubmitAnswer grades an answer and returns the evaluation.
func (s *Server) SubmitAnswer(c *gin.Context) {
	var req answerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing question or answer."})
		return
	}

	userID, minted := ensureUser(c)
	if minted {
		s.setUserCookie(c, userID)
	}

	res, err := s.coach.SubmitAnswer(c.Request.Context(), userID, req.Question, req.Answer)
	if err != nil {
		var ve *coach.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing question or answer."})
		case errors.Is(err, evaluator.ErrServiceUnavailable):
			s.log.Warn("analysis unavailable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis service unavailable. Please try again."})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis service failed."})
		}
		return
	}

	c.JSON(http.StatusOK, evaluationBody(res))
}

func evaluationBody(res *coach.SubmitResult) gin.H {
	body := gin.H{
		"score":    res.Score,
		"feedback": res.Feedback,
	}
	if res.Graded() {
		body["matched_concepts"] = res.MatchedConcepts
		body["missing_concepts"] = res.MissingConcepts
		body["concept_coverage"] = res.Coverage
	}
	return body
}

// Progress returns the caller's weakness dashboard data.
func (s *Server) Progress(c *gin.Context) {
	prog := s.coach.Progress(currentUser(c))

	skills := make(map[string]float64, len(prog.Averages))
	order := make([]string, 0, len(prog.Averages))
	for _, a := range prog.Averages {
		skills[string(a.Concept)] = a.Average
		order = append(order, string(a.Concept))
	}

	var weakest *string
	if prog.Weakest != "" {
		w := string(prog.Weakest)
		weakest = &w
	}

	recommended := prog.Recommended
	if recommended == nil {
		recommended = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_skills":           skills,
		"concept_order":         order,
		"weakest_concept":       weakest,
		"recommended_questions": recommended,
	})
}

// Categories lists the available categories in corpus order.
func (s *Server) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.coach.Categories()})
}

// Health reports liveness and embedding model state.
func (s *Server) Health(c *gin.Context) {
	body := gin.H{"status": "healthy"}
	if s.model != nil {
		body["embedding_model"] = s.model.ModelID()
		body["embedding_loaded"] = s.model.Loaded()
	}
	c.JSON(http.StatusOK, body)
}
