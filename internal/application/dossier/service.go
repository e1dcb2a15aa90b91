// Package dossier orchestre l'analyse complète d'un dossier locataire :
// extraction et validation par document en parallèle, puis corroboration
// externe, contrôle de cohérence, catalogue d'alertes et agrégation du
// score. Le service est sans état, une analyse est entièrement décrite
// par ses entrées.
package dossier

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Stephfff73/verification-antifraude/internal/application/consistency"
	"github.com/Stephfff73/verification-antifraude/internal/application/corroboration"
	"github.com/Stephfff73/verification-antifraude/internal/application/extraction"
	"github.com/Stephfff73/verification-antifraude/internal/application/redflag"
	"github.com/Stephfff73/verification-antifraude/internal/application/scoring"
	"github.com/Stephfff73/verification-antifraude/internal/application/validation"
	"github.com/Stephfff73/verification-antifraude/internal/domain"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
	"github.com/Stephfff73/verification-antifraude/pkg/logger"
)

// defaultOverallTimeout borne l'analyse complète. À l'échéance, les
// appels externes encore en vol sont abandonnés et marqués en délai
// dépassé, l'analyse aboutit quand même.
const defaultOverallTimeout = 30 * time.Second

// DocumentReport est le volet d'un document dans le rapport final.
type DocumentReport struct {
	DocumentID string                    `json:"document_id"`
	FileName   string                    `json:"file_name"`
	Class      entity.DocumentClass      `json:"class"`
	Properties entity.DocumentProperties `json:"properties"`
	Bundle     entity.EntityBundle       `json:"entities"`
	Validation *entity.ValidationResult  `json:"validation"`
}

// Report est le rapport complet d'une analyse, contrat interne avec la
// couche de restitution.
type Report struct {
	ID            string                      `json:"id"`
	GeneratedAt   time.Time                   `json:"generated_at"`
	Documents     []DocumentReport            `json:"documents"`
	Consistency   *entity.ConsistencyResult   `json:"consistency"`
	Corroboration *entity.CorroborationReport `json:"corroboration"`
	RedFlags      []entity.RedFlag            `json:"red_flags"`
	Score         entity.DossierScore         `json:"score"`
}

// Service enchaîne les étapes de l'analyse.
type Service struct {
	extractor    *extraction.Extractor
	validator    *validation.Service
	corroborator *corroboration.Orchestrator
	checker      *consistency.Checker
	engine       *redflag.Engine
	aggregator   *scoring.Aggregator
	log          *logger.Logger
	timeout      time.Duration
	now          func() time.Time
}

// NewService construit le service d'analyse. Un délai global nul ou
// négatif retombe sur le délai par défaut.
func NewService(
	extractor *extraction.Extractor,
	validator *validation.Service,
	corroborator *corroboration.Orchestrator,
	checker *consistency.Checker,
	engine *redflag.Engine,
	aggregator *scoring.Aggregator,
	log *logger.Logger,
	timeout time.Duration,
) *Service {
	if timeout <= 0 {
		timeout = defaultOverallTimeout
	}
	return &Service{
		extractor:    extractor,
		validator:    validator,
		corroborator: corroborator,
		checker:      checker,
		engine:       engine,
		aggregator:   aggregator,
		log:          log,
		timeout:      timeout,
		now:          time.Now,
	}
}

// Analyze exécute l'analyse complète du dossier. L'échec d'un document ou
// d'un appel externe dégrade son seul volet, jamais l'analyse entière.
func (s *Service) Analyze(ctx context.Context, docs []entity.Document) (*Report, error) {
	if len(docs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, d := range docs {
		if !d.Class.Valid() {
			return nil, domain.ErrUnknownDocClass
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	reports := s.analyzeDocuments(docs)

	report := s.corroborator.Corroborate(runCtx, corroborationInput(reports))
	cons := s.checker.Check(consistencyInput(reports))
	flags := s.engine.Evaluate(redflagInput(docs, reports, report, cons, start))

	validations := make([]*entity.ValidationResult, len(reports))
	for i := range reports {
		validations[i] = reports[i].Validation
	}
	score := s.aggregator.Aggregate(validations, cons, flags)

	s.log.Info().
		Int("documents", len(docs)).
		Int("alertes", len(flags)).
		Float64("score", score.Score).
		Str("verdict", string(score.Verdict)).
		Dur("duree", s.now().Sub(start)).
		Msg("analyse du dossier terminée")

	return &Report{
		ID:            uuid.New().String(),
		GeneratedAt:   start,
		Documents:     reports,
		Consistency:   cons,
		Corroboration: report,
		RedFlags:      flags,
		Score:         score,
	}, nil
}

// analyzeDocuments extrait et valide chaque document en parallèle. Les
// documents sont indépendants, chaque goroutine écrit son propre indice.
func (s *Service) analyzeDocuments(docs []entity.Document) []DocumentReport {
	reports := make([]DocumentReport, len(docs))
	done := make(chan int, len(docs))

	for i := range docs {
		go func(i int) {
			doc := docs[i]
			reports[i] = DocumentReport{
				DocumentID: doc.ID,
				FileName:   doc.FileName,
				Class:      doc.Class,
				Properties: doc.Properties,
				Bundle:     s.extractor.Extract(doc.Class, doc.RawText),
				Validation: s.validator.Validate(doc),
			}
			done <- i
		}(i)
	}
	for range docs {
		<-done
	}
	return reports
}

// corroborationInput choisit les entités représentatives : premier SIRET
// rencontré, meilleures adresses domicile et travail, email professionnel
// de préférence.
func corroborationInput(reports []DocumentReport) corroboration.Input {
	var in corroboration.Input
	var bestHome, bestWork *entity.Address

	for i := range reports {
		b := reports[i].Bundle
		if in.Siret == "" && len(b.Sirets) > 0 {
			in.Siret = b.Sirets[0]
		}
		if a := b.BestAddress(entity.AddressHome); a != nil {
			if bestHome == nil || a.Confidence > bestHome.Confidence {
				bestHome = a
			}
		}
		if a := b.BestAddress(entity.AddressWork); a != nil {
			if bestWork == nil || a.Confidence > bestWork.Confidence {
				bestWork = a
			}
		}
		for j := range b.Emails {
			em := b.Emails[j]
			if in.Email == nil || (em.Professional && !in.Email.Professional) {
				in.Email = &em
			}
		}
	}
	in.HomeAddress = bestHome
	in.WorkAddress = bestWork
	return in
}

func consistencyInput(reports []DocumentReport) []consistency.DocumentInput {
	out := make([]consistency.DocumentInput, len(reports))
	for i, r := range reports {
		out[i] = consistency.DocumentInput{Class: r.Class, Bundle: r.Bundle}
	}
	return out
}

func redflagInput(
	docs []entity.Document,
	reports []DocumentReport,
	report *entity.CorroborationReport,
	cons *entity.ConsistencyResult,
	now time.Time,
) redflag.Input {
	in := redflag.Input{
		Corroboration: report,
		Consistency:   cons,
		Now:           now,
	}
	for i := range reports {
		in.Documents = append(in.Documents, redflag.DocumentInput{
			Class:  reports[i].Class,
			Text:   docs[i].RawText,
			Bundle: reports[i].Bundle,
		})
	}
	return in
}
