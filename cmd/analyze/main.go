// analyze lance l'analyse d'un dossier locataire depuis la ligne de
// commande : chaque PDF du répertoire est lu, classé d'après son nom de
// fichier, puis le rapport complet est écrit en JSON sur la sortie
// standard.
//
// Usage : go run ./cmd/analyze -dir ./dossier
// Les classes reconnues dans les noms de fichiers : contrat, bulletin/paie,
// avis/imposition, identite/cni/passeport, quittance/loyer.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Stephfff73/verification-antifraude/internal/application/consistency"
	"github.com/Stephfff73/verification-antifraude/internal/application/corroboration"
	"github.com/Stephfff73/verification-antifraude/internal/application/dossier"
	"github.com/Stephfff73/verification-antifraude/internal/application/extraction"
	"github.com/Stephfff73/verification-antifraude/internal/application/redflag"
	"github.com/Stephfff73/verification-antifraude/internal/application/scoring"
	"github.com/Stephfff73/verification-antifraude/internal/application/validation"
	"github.com/Stephfff73/verification-antifraude/internal/domain/entity"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/ban"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/insee"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/mailcheck"
	"github.com/Stephfff73/verification-antifraude/internal/infrastructure/pdfdoc"
	"github.com/Stephfff73/verification-antifraude/pkg/config"
	"github.com/Stephfff73/verification-antifraude/pkg/logger"
)

func main() {
	dir := flag.String("dir", ".", "répertoire contenant les PDF du dossier")
	pretty := flag.Bool("pretty", true, "indenter la sortie JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chargement de la configuration : %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	ctx := context.Background()
	docs, err := loadDocuments(ctx, *dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lecture du dossier : %v\n", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		fmt.Fprintf(os.Stderr, "aucun PDF reconnu dans %s\n", *dir)
		os.Exit(1)
	}

	aggregator, err := scoring.NewAggregator(scoring.Weights{
		Documents:   cfg.Analyse.WeightDocuments,
		Consistency: cfg.Analyse.WeightConsistency,
		RedFlags:    cfg.Analyse.WeightRedFlags,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pondérations du score invalides : %v\n", err)
		os.Exit(1)
	}

	svc := dossier.NewService(
		extraction.NewExtractor(extraction.Strictness(cfg.Analyse.Strictness)),
		validation.NewService(),
		corroboration.NewOrchestrator(
			insee.NewClient(cfg.Sirene.BaseURL, cfg.Sirene.Token, cfg.Analyse.CallTimeout),
			ban.NewClient(cfg.BAN.BaseURL, cfg.Analyse.CallTimeout),
			mailcheck.NewResolver(),
			cfg.Analyse.CallTimeout,
		),
		consistency.NewChecker(),
		redflag.NewEngine(),
		aggregator,
		log,
		cfg.Analyse.OverallTimeout,
	)

	report, err := svc.Analyze(ctx, docs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyse : %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "sortie JSON : %v\n", err)
		os.Exit(1)
	}
}

// loadDocuments lit chaque PDF du répertoire dont le nom permet d'inférer
// une classe. Les fichiers illisibles ou sans classe sont ignorés avec un
// avertissement.
func loadDocuments(ctx context.Context, dir string) ([]entity.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	reader := pdfdoc.NewReader()
	var docs []entity.Document
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		class, ok := classFromFileName(e.Name())
		if !ok {
			fmt.Fprintf(os.Stderr, "classe non reconnue, fichier ignoré : %s\n", e.Name())
			continue
		}
		path := filepath.Join(dir, e.Name())
		text, err := reader.Text(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lecture impossible, fichier ignoré : %s (%v)\n", e.Name(), err)
			continue
		}
		props, err := reader.Properties(ctx, path)
		if err != nil {
			props = entity.DocumentProperties{}
		}
		docs = append(docs, entity.Document{
			ID:         uuid.New().String(),
			Class:      class,
			FileName:   e.Name(),
			RawText:    text,
			Properties: props,
		})
	}
	return docs, nil
}

// classFromFileName infère la classe du document d'après des mots-clés du
// nom de fichier.
func classFromFileName(name string) (entity.DocumentClass, bool) {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "contrat"):
		return entity.DocContratTravail, true
	case strings.Contains(n, "bulletin"), strings.Contains(n, "paie"), strings.Contains(n, "salaire"):
		return entity.DocFichePaie, true
	case strings.Contains(n, "avis"), strings.Contains(n, "imposition"), strings.Contains(n, "impot"):
		return entity.DocAvisImposition, true
	case strings.Contains(n, "identite"), strings.Contains(n, "cni"), strings.Contains(n, "passeport"):
		return entity.DocPieceIdentite, true
	case strings.Contains(n, "quittance"), strings.Contains(n, "loyer"):
		return entity.DocQuittanceLoyer, true
	default:
		return "", false
	}
}
