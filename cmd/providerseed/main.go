// Command providerseed loads the CMS provider and service CSV extracts
// into the database and builds the search index.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/config"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/db"
	dbRedis "github.com/CalebSutherland/AI-Provider-Finder/internal/db/redis"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	logpkg "github.com/CalebSutherland/AI-Provider-Finder/internal/logger"
	demorepo "github.com/CalebSutherland/AI-Provider-Finder/internal/repository/demographics"
	directoryrepo "github.com/CalebSutherland/AI-Provider-Finder/internal/repository/directory"
)

const batchSize = 500

func main() {
	_ = godotenv.Load()

	providersPath := flag.String("providers", "", "path to the by-provider CSV extract")
	servicesPath := flag.String("services", "", "path to the by-provider-and-service CSV extract (optional)")
	recreate := flag.Bool("recreate", false, "drop and rebuild the search index before loading")
	flag.Parse()

	if *providersPath == "" {
		fmt.Fprintln(os.Stderr, "usage: providerseed -providers <csv> [-services <csv>] [-recreate]")
		os.Exit(2)
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	services := map[int64][]string{}
	if *servicesPath != "" {
		services, err = loadServices(*servicesPath)
		if err != nil {
			logger.Fatal("Failed to load services CSV", zap.Error(err))
		}
		logger.Info("Service codes loaded", zap.Int("providers", len(services)))
	}

	if err := ensureIndex(ctx, store, cfg.Storage.KeyPrefix, *recreate, logger); err != nil {
		logger.Fatal("Failed to create search index", zap.Error(err))
	}

	loaded, err := loadProviders(ctx, store, cfg.Storage.KeyPrefix, *providersPath, services, logger)
	if err != nil {
		logger.Fatal("Failed to load providers CSV", zap.Error(err))
	}

	def := directoryrepo.IndexDefinition(cfg.Storage.KeyPrefix)
	indexed, err := store.SearchCount(ctx, def.Name, "*")
	if err != nil {
		logger.Fatal("Failed to count indexed providers", zap.Error(err))
	}

	logger.Info("Seeding complete",
		zap.Int("rows_loaded", loaded),
		zap.Int("indexed", indexed),
	)
}

func ensureIndex(ctx context.Context, store db.Store, keyPrefix string, recreate bool, logger *zap.Logger) error {
	def := directoryrepo.IndexDefinition(keyPrefix)

	exists, err := store.IndexExists(ctx, def.Name)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		if !recreate {
			logger.Info("Index already exists", zap.String("index", def.Name))
			return nil
		}
		if err := store.DropIndex(ctx, def.Name); err != nil {
			return fmt.Errorf("drop index: %w", err)
		}
		logger.Info("Dropped existing index", zap.String("index", def.Name))
	}

	if err := store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	logger.Info("Index created", zap.String("index", def.Name))
	return nil
}

// loadServices aggregates HCPCS codes per provider. Duplicate codes
// for the same provider collapse to one.
func loadServices(path string) (map[int64][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := columnIndex(header)

	npiCol, ok := cols["rndrng_npi"]
	if !ok {
		return nil, fmt.Errorf("services CSV missing Rndrng_NPI column")
	}
	codeCol, ok := cols["hcpcs_cd"]
	if !ok {
		return nil, fmt.Errorf("services CSV missing HCPCS_Cd column")
	}

	seen := map[int64]map[string]bool{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		npi, err := strconv.ParseInt(strings.TrimSpace(row[npiCol]), 10, 64)
		if err != nil {
			continue
		}
		code := strings.TrimSpace(row[codeCol])
		if code == "" {
			continue
		}
		if seen[npi] == nil {
			seen[npi] = map[string]bool{}
		}
		seen[npi][code] = true
	}

	out := make(map[int64][]string, len(seen))
	for npi, codes := range seen {
		list := make([]string, 0, len(codes))
		for code := range codes {
			list = append(list, code)
		}
		sort.Strings(list)
		out[npi] = list
	}
	return out, nil
}

func loadProviders(
	ctx context.Context,
	store db.Store,
	keyPrefix, path string,
	services map[int64][]string,
	logger *zap.Logger,
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols["rndrng_npi"]; !ok {
		return 0, fmt.Errorf("providers CSV missing Rndrng_NPI column")
	}

	var (
		batch   []db.HashSetItem
		loaded  int
		skipped int
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := store.HSetMulti(ctx, batch); err != nil {
			return fmt.Errorf("write batch: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loaded, fmt.Errorf("read row: %w", err)
		}

		profile, ok := parseRow(cols, row)
		if !ok {
			skipped++
			continue
		}

		fields := directoryrepo.BuildHashFields(profile.Provider, services[profile.Provider.ID])
		for k, v := range demorepo.BuildCountFields(profile) {
			fields[k] = v
		}

		batch = append(batch, db.HashSetItem{
			Key:    directoryrepo.Key(keyPrefix, profile.Provider.ID),
			Fields: fields,
		})
		loaded++

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return loaded, err
			}
			if loaded%10000 == 0 {
				logger.Info("Loading providers", zap.Int("rows", loaded))
			}
		}
	}
	if err := flush(); err != nil {
		return loaded, err
	}

	if skipped > 0 {
		logger.Warn("Skipped malformed rows", zap.Int("rows", skipped))
	}
	return loaded, nil
}

// parseRow maps one CSV record onto a provider with its demographic
// counts. Rows without a numeric NPI are rejected; every other field
// degrades to empty or nil.
func parseRow(cols map[string]int, row []string) (domain.DemographicProfile, bool) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	optStr := func(name string) *string {
		v := get(name)
		if v == "" {
			return nil
		}
		return &v
	}
	optInt := func(names ...string) *int {
		for _, name := range names {
			if n, err := strconv.Atoi(get(name)); err == nil {
				return &n
			}
		}
		return nil
	}

	npi, err := strconv.ParseInt(get("rndrng_npi"), 10, 64)
	if err != nil {
		return domain.DemographicProfile{}, false
	}

	totalBenes, _ := strconv.Atoi(get("tot_benes"))
	avgAge, _ := strconv.ParseFloat(get("bene_avg_age"), 64)

	return domain.DemographicProfile{
		Provider: domain.Provider{
			ID:              npi,
			LastName:        get("rndrng_prvdr_last_org_name"),
			FirstName:       optStr("rndrng_prvdr_first_name"),
			Credentials:     optStr("rndrng_prvdr_crdntls"),
			Street1:         get("rndrng_prvdr_st1"),
			Street2:         optStr("rndrng_prvdr_st2"),
			City:            get("rndrng_prvdr_city"),
			State:           get("rndrng_prvdr_state_abrvtn"),
			Zipcode:         get("rndrng_prvdr_zip5"),
			Specialty:       get("rndrng_prvdr_type"),
			AcceptsMedicare: get("rndrng_prvdr_mdcr_prtcptg_ind"),
			TotalBenes:      totalBenes,
			AvgAge:          avgAge,
		},
		BeneFemaleCount:       optInt("bene_feml_cnt"),
		BeneMaleCount:         optInt("bene_male_cnt"),
		BeneRaceWhiteCount:    optInt("bene_race_wht_cnt"),
		BeneRaceBlackCount:    optInt("bene_race_black_cnt"),
		BeneRaceAsianCount:    optInt("bene_race_api_cnt"),
		BeneRaceHispanicCount: optInt("bene_race_hspnc_cnt"),
		BeneRaceNativeCount:   optInt("bene_race_natind_cnt", "bene_race_nat_ind_cnt"),
		BeneRaceOtherCount:    optInt("bene_race_othr_cnt"),
	}, true
}

// columnIndex maps lowercased header names to positions so the loader
// accepts either the raw CMS casing or a lowercased export.
func columnIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return m
}
