package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"mrmm/internal/domain"
	"mrmm/internal/linker"
	"mrmm/internal/logging"
	"mrmm/internal/storage/config"
	"mrmm/internal/storage/db"

	"github.com/spf13/afero"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir string   // Directory for config.yaml
	DataDir   string   // Directory for profiles, database and log
	GameDir   string   // Overrides the configured game directory for this session
	TempDir   string   // Parent of extraction temp dirs ("" = system default)
	DBPath    string   // Database location ("" = <DataDir>/mrmm.db)
	DisableDB bool     // Run without the origin ledger and activity journal
	Fs        afero.Fs // Filesystem (nil = the OS filesystem)
}

// Service is the activation controller: it moves mods between the staging
// set, the live mods directory and the profile store
type Service struct {
	fs        afero.Fs
	config    *config.Config
	db        *db.DB
	extractor *Extractor
	temps     *TempTracker
	staging   *StagingSet
	profiles  *ProfileStore

	configDir       string
	dataDir         string
	gameDirOverride string

	// Set when a profile load left the live directory half replaced
	syncBlocked bool
}

// StageResult describes one source file taken into staging
type StageResult struct {
	Source     string
	Added      []string
	Duplicates []string // Already staged under the same name
}

// ApplyResult describes an ApplyStaging call
type ApplyResult struct {
	Applied       []string // Copied into the live directory
	AlreadyActive []string // Staged but already live; left untouched
	Failed        []string // Copy failed; still staged
}

// Status summarizes the live directory against the current profile
type Status struct {
	GameDir        string
	CurrentProfile string
	Live           []string
	Staged         []string
	Missing        []string // In the current profile but not live
	Extra          []string // Live but not in the current profile
}

// InSync reports whether the live directory matches the current profile
func (st *Status) InSync() bool {
	return len(st.Missing) == 0 && len(st.Extra) == 0
}

// NewService creates a new core service instance
func NewService(cfg ServiceConfig) (*Service, error) {
	log := logging.GetLogger("core")

	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if err := fs.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", domain.NewIOError("mkdir", cfg.DataDir, err))
	}

	appConfig, err := config.Load(fs, cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var database *db.DB
	if !cfg.DisableDB {
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = filepath.Join(cfg.DataDir, db.FileName)
		}
		database, err = db.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
	}

	temps := NewTempTracker(fs)
	s := &Service{
		fs:              fs,
		config:          appConfig,
		db:              database,
		extractor:       NewExtractor(fs, cfg.TempDir),
		temps:           temps,
		staging:         NewStagingSet(temps),
		profiles:        NewProfileStore(fs, filepath.Join(cfg.DataDir, ProfilesDirName)),
		configDir:       cfg.ConfigDir,
		dataDir:         cfg.DataDir,
		gameDirOverride: cfg.GameDir,
	}

	if name := appConfig.CurrentProfile; name != "" && !s.profiles.Exists(name) {
		log.Info().Str("profile", name).Msg("Current profile no longer exists, clearing")
		if err := s.setCurrentProfile(""); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Shutdown ends the session: optionally syncs the current profile from
// the live directory, removes every temp dir, then closes the database.
// All steps run; their errors are joined.
func (s *Service) Shutdown(sync bool) error {
	var errs []error
	if sync {
		if _, err := s.ShutdownSync(); err != nil {
			errs = append(errs, fmt.Errorf("syncing profile: %w", err))
		}
	}
	s.staging = NewStagingSet(s.temps)
	if err := s.temps.Cleanup(); err != nil {
		log := logging.GetLogger("core")
		log.Warn().Err(err).Msg("Temp cleanup incomplete")
	}
	if err := s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the configuration directory
func (s *Service) ConfigDir() string {
	return s.configDir
}

// DataDir returns the data directory
func (s *Service) DataDir() string {
	return s.dataDir
}

// Profiles returns the profile store
func (s *Service) Profiles() *ProfileStore {
	return s.profiles
}

// GameDir returns the game directory in effect ("" if unset)
func (s *Service) GameDir() string {
	if s.gameDirOverride != "" {
		return s.gameDirOverride
	}
	return s.config.GameDir
}

// SetGameDir validates and stores the game directory
func (s *Service) SetGameDir(path string) error {
	dir, err := config.ParseGameDir(s.fs, path)
	if err != nil {
		return err
	}
	s.config.GameDir = dir
	s.gameDirOverride = ""
	if err := s.saveConfig(); err != nil {
		return err
	}
	log := logging.GetLogger("core")
	log.Info().Str("dir", dir).Msg("Game directory set")
	return nil
}

// Game returns the configured installation
func (s *Service) Game() (*domain.Game, error) {
	dir := s.GameDir()
	if dir == "" {
		return nil, domain.ErrGameDirNotSet
	}
	if !domain.IsGameRoot(s.fs, dir) {
		return nil, fmt.Errorf("%w: %s not found in %s", domain.ErrInvalidGameDir, domain.LauncherExecutable, dir)
	}
	return &domain.Game{Root: dir}, nil
}

// LiveDir returns the live mods directory
func (s *Service) LiveDir() (string, error) {
	game, err := s.Game()
	if err != nil {
		return "", err
	}
	return game.ModsPath(), nil
}

// DarkTheme returns the persisted theme choice
func (s *Service) DarkTheme() bool {
	return s.config.DarkTheme
}

// SetDarkTheme persists the theme choice
func (s *Service) SetDarkTheme(dark bool) error {
	s.config.DarkTheme = dark
	return s.saveConfig()
}

// Keybindings returns the configured keybinding style
func (s *Service) Keybindings() string {
	return s.config.Keybindings
}

// SetKeybindings persists the keybinding style
func (s *Service) SetKeybindings(mode string) error {
	s.config.Keybindings = mode
	return s.saveConfig()
}

// CurrentProfile returns the active profile name ("" if none)
func (s *Service) CurrentProfile() string {
	return s.config.CurrentProfile
}

// LiveMods lists the mod files in the live directory
func (s *Service) LiveMods() ([]string, error) {
	dir, err := s.LiveDir()
	if err != nil {
		return nil, err
	}
	return linker.ListModFiles(s.fs, dir)
}

// StageFile extracts path and stages every mod file found in it
func (s *Service) StageFile(path string) (*StageResult, error) {
	extraction, err := s.extractor.Extract(path)
	if err != nil {
		return nil, err
	}
	s.temps.Track(extraction.TempDir)

	result := &StageResult{Source: path}
	for _, f := range extraction.Files {
		if s.staging.Add(f, path, extraction.TempDir) {
			result.Added = append(result.Added, f.Name)
		} else {
			result.Duplicates = append(result.Duplicates, f.Name)
		}
	}
	s.staging.ReleaseUnused(extraction.TempDir)

	log := logging.GetLogger("core")
	log.Info().
		Str("source", path).
		Int("added", len(result.Added)).
		Int("duplicates", len(result.Duplicates)).
		Msg("Staged mods")
	return result, nil
}

// Staged returns the staged entries in order
func (s *Service) Staged() []StagingEntry {
	return s.staging.Entries()
}

// Unstage drops one staged mod
func (s *Service) Unstage(name string) error {
	if !s.staging.Remove(name) {
		return fmt.Errorf("%s is not staged: %w", name, domain.ErrNotFound)
	}
	return nil
}

// ClearStaging empties the staging set without touching any mod file
func (s *Service) ClearStaging() {
	s.staging.Clear()
}

// ApplyStaging copies staged mods into the live directory. It only adds:
// live mods are never removed and a staged name that is already live is
// left as is. Applied entries leave the staging set; failed ones stay.
func (s *Service) ApplyStaging() (*ApplyResult, error) {
	result := &ApplyResult{}
	if s.staging.Len() == 0 {
		return result, nil
	}

	dir, err := s.LiveDir()
	if err != nil {
		return nil, err
	}
	live, err := linker.ListModFiles(s.fs, dir)
	if err != nil {
		return nil, err
	}

	liveSet := toSet(live)
	target := append([]string{}, live...)
	for _, name := range s.staging.List() {
		if liveSet[name] {
			result.AlreadyActive = append(result.AlreadyActive, name)
			continue
		}
		target = append(target, name)
	}

	report, err := linker.Reconcile(s.fs, dir, target, s.staging.Provider())
	if report == nil || (len(report.Added) == 0 && len(report.Failures) == 0 && err != nil) {
		return nil, err
	}

	for _, name := range report.Added {
		entry, _ := s.staging.Get(name)
		s.recordOrigin(name, entry.Origin)
	}
	result.Applied = report.Added
	for _, f := range report.Failures {
		result.Failed = append(result.Failed, f.Name)
	}

	if err == nil {
		s.staging.Clear()
	} else {
		for _, name := range append(append([]string{}, result.Applied...), result.AlreadyActive...) {
			s.staging.Remove(name)
		}
	}

	s.record("apply", "", report, err)
	return result, err
}

// RemoveLiveMod deletes one mod from the live directory
func (s *Service) RemoveLiveMod(name string) error {
	dir, err := s.LiveDir()
	if err != nil {
		return err
	}
	live, err := linker.ListModFiles(s.fs, dir)
	if err != nil {
		return err
	}
	if !toSet(live)[name] {
		return fmt.Errorf("%s is not active: %w", name, domain.ErrNotFound)
	}

	if err := linker.NewCopy(s.fs).Undeploy(filepath.Join(dir, name)); err != nil {
		return err
	}
	s.forgetOrigin(name)
	s.record("remove", "", &linker.Report{Removed: []string{name}}, nil)
	return nil
}

// ClearAll removes every mod from the live directory and from the current
// profile, then empties that profile's manifest. Removal is best-effort.
func (s *Service) ClearAll() (*linker.Report, error) {
	current := s.CurrentProfile()
	if current == "" {
		return nil, domain.ErrNoActiveProfile
	}
	dir, err := s.LiveDir()
	if err != nil {
		return nil, err
	}

	report := &linker.Report{Dir: dir}
	var errs []error

	liveReport, err := linker.RemoveAll(s.fs, dir)
	report.Merge(liveReport)
	errs = append(errs, err)

	profileDir := s.profiles.Path(current)
	profileReport, err := linker.RemoveAll(s.fs, profileDir)
	if profileReport != nil {
		report.Failures = append(report.Failures, profileReport.Failures...)
	}
	errs = append(errs, err)

	errs = append(errs, config.WriteManifest(s.fs, profileDir, []string{}))

	if s.db != nil {
		if err := s.db.PruneModOrigins(failedNames(liveReport)); err != nil {
			log := logging.GetLogger("core")
			log.Warn().Err(err).Msg("Failed to prune mod origins")
		}
	}

	err = errors.Join(errs...)
	s.record("clear", current, report, err)
	return report, err
}

// SaveAsProfile snapshots the live directory into a new profile and makes
// it current
func (s *Service) SaveAsProfile(name string) (*domain.Profile, error) {
	if err := domain.ValidateProfileName(name); err != nil {
		return nil, err
	}
	dir, err := s.LiveDir()
	if err != nil {
		return nil, err
	}
	snapshot, err := linker.ListPackagedFiles(s.fs, dir)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Create(name, snapshot)
	if profile != nil {
		s.record("save", name, &linker.Report{Added: profile.Mods}, err)
	}
	if err != nil {
		return profile, err
	}

	if err := s.setCurrentProfile(name); err != nil {
		return profile, err
	}
	return profile, nil
}

// LoadProfile replaces the live directory's contents with the named
// profile and makes it current. On any copy or removal failure the
// current profile is left unchanged.
func (s *Service) LoadProfile(name string) (*linker.Report, error) {
	if err := domain.ValidateProfileName(name); err != nil {
		return nil, err
	}
	if !s.profiles.Exists(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}
	dir, err := s.LiveDir()
	if err != nil {
		return nil, err
	}

	mods, err := s.profiles.RefreshManifest(name)
	if err != nil {
		return nil, err
	}

	report, err := linker.Reconcile(s.fs, dir, mods, s.profiles.Provider(name))
	if report != nil {
		for _, added := range report.Added {
			s.recordOrigin(added, db.ProfileOrigin(name))
		}
		for _, removed := range report.Removed {
			s.forgetOrigin(removed)
		}
	}
	s.record("load", name, report, err)
	if err != nil {
		if report != nil && (len(report.Added) > 0 || len(report.Removed) > 0 || len(report.Failures) > 0) {
			s.syncBlocked = true
		}
		return report, err
	}

	s.syncBlocked = false
	if err := s.setCurrentProfile(name); err != nil {
		return report, err
	}
	log := logging.GetLogger("core")
	log.Info().Str("profile", name).Int("mods", len(mods)).Msg("Loaded profile")
	return report, nil
}

// DeleteProfile removes a profile, clearing it as current if needed
func (s *Service) DeleteProfile(name string) error {
	if err := s.profiles.Delete(name); err != nil {
		return err
	}
	s.record("delete", name, nil, nil)
	if s.CurrentProfile() == name {
		return s.setCurrentProfile("")
	}
	return nil
}

// ListProfiles refreshes every manifest and returns all profiles
func (s *Service) ListProfiles() ([]*domain.Profile, error) {
	return s.profiles.RefreshAll()
}

// GetProfile refreshes and returns one profile
func (s *Service) GetProfile(name string) (*domain.Profile, error) {
	return s.profiles.Get(name)
}

// EnsureDefaultProfile creates an empty "Default" profile and makes it
// current the first time the profile store is used. Once the store
// directory exists this does nothing, even if it is empty.
func (s *Service) EnsureDefaultProfile() (bool, error) {
	exists, err := s.profiles.RootExists()
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := s.profiles.Create(domain.DefaultProfileName, nil); err != nil {
		return false, err
	}
	if err := s.setCurrentProfile(domain.DefaultProfileName); err != nil {
		return true, err
	}
	log := logging.GetLogger("core")
	log.Info().Msg("Created default profile")
	return true, nil
}

// ShutdownSync copies the live directory's mod set into the current
// profile, so the profile mirrors what was active when the session ended.
// The live directory is not modified. Nothing happens without a current
// profile or a live directory, or after a profile load in this session
// failed partway.
func (s *Service) ShutdownSync() (*linker.Report, error) {
	log := logging.GetLogger("core")

	current := s.CurrentProfile()
	if current == "" {
		return nil, nil
	}
	if s.syncBlocked {
		log.Warn().Str("profile", current).Msg("Live directory is a partial profile load, skipping sync")
		return nil, nil
	}
	dir, err := s.LiveDir()
	if err != nil {
		log.Debug().Err(err).Msg("No live directory, skipping profile sync")
		return nil, nil
	}
	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return nil, domain.NewIOError("stat", dir, err)
	}
	if !exists {
		return nil, nil
	}
	if !s.profiles.Exists(current) {
		log.Warn().Str("profile", current).Msg("Current profile missing, skipping sync")
		return nil, nil
	}

	live, err := linker.ListModFiles(s.fs, dir)
	if err != nil {
		return nil, err
	}

	report, err := linker.Reconcile(s.fs, s.profiles.Path(current), live, linker.DirProvider(s.fs, dir))
	if _, rerr := s.profiles.RefreshManifest(current); rerr != nil {
		err = errors.Join(err, rerr)
	}
	if report != nil && (len(report.Added) > 0 || len(report.Removed) > 0 || len(report.Failures) > 0) {
		s.record("sync", current, report, err)
	}
	return report, err
}

// Status compares the live directory with the current profile
func (s *Service) Status() (*Status, error) {
	st := &Status{
		GameDir:        s.GameDir(),
		CurrentProfile: s.CurrentProfile(),
		Staged:         s.staging.List(),
	}

	live, err := s.LiveMods()
	if err != nil {
		return st, err
	}
	st.Live = live

	if st.CurrentProfile == "" {
		return st, nil
	}
	mods, err := s.profiles.RefreshManifest(st.CurrentProfile)
	if err != nil {
		return st, err
	}
	st.Missing = difference(mods, live)
	st.Extra = difference(live, mods)
	return st, nil
}

// Origins returns where each live mod came from. Without a database the
// map is empty.
func (s *Service) Origins() (map[string]db.ModOrigin, error) {
	if s.db == nil {
		return map[string]db.ModOrigin{}, nil
	}
	return s.db.GetModOrigins()
}

// History returns the most recent journaled operations, newest first
func (s *Service) History(limit int) ([]db.Activity, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.RecentActivity(limit)
}

func (s *Service) setCurrentProfile(name string) error {
	s.config.CurrentProfile = name
	return s.saveConfig()
}

func (s *Service) saveConfig() error {
	if err := s.config.Save(s.fs, s.configDir); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

func (s *Service) recordOrigin(name, origin string) {
	if s.db == nil {
		return
	}
	if err := s.db.SaveModOrigin(name, origin); err != nil {
		log := logging.GetLogger("core")
		log.Warn().Err(err).Str("mod", name).Msg("Failed to record mod origin")
	}
}

func (s *Service) forgetOrigin(name string) {
	if s.db == nil {
		return
	}
	if err := s.db.DeleteModOrigin(name); err != nil {
		log := logging.GetLogger("core")
		log.Warn().Err(err).Str("mod", name).Msg("Failed to forget mod origin")
	}
}

func (s *Service) record(op, profile string, report *linker.Report, opErr error) {
	log := logging.GetLogger("core")

	entry := db.Activity{Operation: op, ProfileName: profile}
	if report != nil {
		entry.Added = len(report.Added)
		entry.Removed = len(report.Removed)
		entry.Failed = len(report.Failures)
	}
	if opErr != nil {
		entry.Detail = strings.ReplaceAll(opErr.Error(), "\n", "; ")
	}

	event := log.Info()
	if opErr != nil {
		event = log.Warn().Err(opErr)
	}
	event.Str("op", op).Str("profile", profile).
		Int("added", entry.Added).Int("removed", entry.Removed).Int("failed", entry.Failed).
		Msg("Operation finished")

	if s.db == nil {
		return
	}
	if err := s.db.RecordActivity(entry); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("Failed to record activity")
	}
}

// failedNames lists the items a report could not process
func failedNames(r *linker.Report) []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		names = append(names, f.Name)
	}
	return names
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// difference returns the names in a that are not in b, keeping a's order
func difference(a, b []string) []string {
	in := toSet(b)
	var out []string
	for _, n := range a {
		if !in[n] {
			out = append(out, n)
		}
	}
	return out
}
