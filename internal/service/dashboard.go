// Package service owns the dashboard state and serializes every change to it.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/directory"
	"github.com/fakhrymubarak/weather-dashboard/internal/geolocation"
	"github.com/fakhrymubarak/weather-dashboard/internal/modal"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/notify"
	"github.com/fakhrymubarak/weather-dashboard/internal/registry"
	"github.com/fakhrymubarak/weather-dashboard/internal/render"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
)

// DashboardInterface is what the hosts drive.
type DashboardInterface interface {
	Bootstrap(ctx context.Context)
	Refresh()
	SelectCity(index int) bool
	AddCity(name string) error
	RemoveCity(index int) bool
	ApplyPosition(c model.Coordinates)
	ApplyPositionError(err error)
	OpenModal()
	InputChanged(text string)
	PickSuggestion(name string)
	ConfirmModal()
	CancelModal()
	BlurSuggestions()
	DismissNotification()
	Suggestions(query string) []string
	Cities() ([]model.LocationEntry, int)
	View() render.View
	Subscribe() (<-chan struct{}, func())
}

// Options wires a Dashboard. Zero values fall back to config.
type Options struct {
	Cities       repository.CityRepository
	Weather      repository.WeatherRepository
	Locator      geolocation.Locator
	Directory    *directory.Directory
	NotifyAfter  time.Duration
	ForecastDays int
	Logger       *zap.SugaredLogger
	Now          func() time.Time
}

// Dashboard is the single owner of the application state. Every exported
// method runs to completion under one mutex; forecast loads finish on their
// own goroutines and are discarded when a newer load has started.
type Dashboard struct {
	mu           sync.Mutex
	cities       repository.CityRepository
	weather      repository.WeatherRepository
	locator      geolocation.Locator
	directory    *directory.Directory
	registry     *registry.Registry
	modal        *modal.Modal
	notifier     *notify.Notifier
	panel        render.PanelState
	token        uint64
	bootstrapped bool
	forecastDays int
	logger       *zap.SugaredLogger
	now          func() time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	subsMu  sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
	closed  bool
}

func NewDashboard(opts Options) *Dashboard {
	if opts.Directory == nil {
		opts.Directory = directory.Default()
	}
	if opts.NotifyAfter <= 0 {
		opts.NotifyAfter = config.GetNotificationTimeout()
	}
	if opts.ForecastDays <= 0 {
		opts.ForecastDays = config.GetForecastDays()
	}
	if opts.Logger == nil {
		opts.Logger = config.GetLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dashboard{
		cities:       opts.Cities,
		weather:      opts.Weather,
		locator:      opts.Locator,
		directory:    opts.Directory,
		registry:     registry.New(opts.Directory, nil, 0),
		modal:        modal.New(opts.Directory),
		forecastDays: opts.ForecastDays,
		logger:       opts.Logger,
		now:          opts.Now,
		ctx:          ctx,
		cancel:       cancel,
		subs:         make(map[int]chan struct{}),
	}
	d.notifier = notify.New(opts.NotifyAfter, d.publish)
	return d
}

// Bootstrap restores the persisted registry. With an empty registry it asks
// the locator for a position; otherwise it loads the active city.
// Only the first call has an effect.
func (d *Dashboard) Bootstrap(ctx context.Context) {
	d.mu.Lock()
	if d.bootstrapped {
		d.mu.Unlock()
		return
	}
	d.bootstrapped = true

	entries, active, err := d.cities.Load(ctx)
	if err != nil {
		d.logger.Errorw("Failed to load saved cities", "error", err)
	}
	d.registry = registry.New(d.directory, entries, active)
	d.logger.Infow("Dashboard restored", "cities", d.registry.Len(), "active", d.registry.ActiveIndex())

	if d.registry.Len() > 0 {
		d.fetchLocked()
		d.mu.Unlock()
		d.publish()
		return
	}

	if d.locator == nil {
		d.positionFailedLocked(geolocation.ErrUnsupported)
		d.mu.Unlock()
		d.publish()
		return
	}
	d.mu.Unlock()

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		c, err := d.locator.Locate(d.ctx)
		if d.ctx.Err() != nil {
			return
		}
		if err != nil {
			d.ApplyPositionError(err)
			return
		}
		d.ApplyPosition(c)
	}()
}

// Refresh reloads the active city.
func (d *Dashboard) Refresh() {
	d.mu.Lock()
	d.fetchLocked()
	d.mu.Unlock()
	d.publish()
}

// SelectCity activates index. It reports false when nothing changed.
func (d *Dashboard) SelectCity(index int) bool {
	d.mu.Lock()
	changed := d.registry.Select(index)
	if changed {
		d.persistLocked()
		d.fetchLocked()
	}
	d.mu.Unlock()

	if changed {
		d.publish()
	}
	return changed
}

// AddCity appends a city from the directory. Validation failures are returned
// as registry errors and leave the state untouched.
func (d *Dashboard) AddCity(name string) error {
	d.mu.Lock()
	err := d.addLocked(name)
	d.mu.Unlock()

	if err == nil {
		d.publish()
	}
	return err
}

func (d *Dashboard) addLocked(name string) error {
	first, err := d.registry.Add(name)
	if err != nil {
		return err
	}
	d.persistLocked()
	if first {
		d.fetchLocked()
	}
	return nil
}

// RemoveCity deletes the entry at index and reloads the active city.
// The current-location entry and out-of-range indexes are ignored.
func (d *Dashboard) RemoveCity(index int) bool {
	d.mu.Lock()
	removed := d.registry.Remove(index)
	if removed {
		d.persistLocked()
		d.fetchLocked()
	}
	d.mu.Unlock()

	if removed {
		d.publish()
	}
	return removed
}

// ApplyPosition records a geolocation result as the current-location entry.
func (d *Dashboard) ApplyPosition(c model.Coordinates) {
	d.mu.Lock()
	active := d.registry.AddCurrentLocation(c)
	d.persistLocked()
	if active {
		d.fetchLocked()
	}
	d.mu.Unlock()
	d.publish()
}

// ApplyPositionError sends the user to manual entry.
func (d *Dashboard) ApplyPositionError(err error) {
	d.mu.Lock()
	d.positionFailedLocked(err)
	d.mu.Unlock()
	d.publish()
}

func (d *Dashboard) positionFailedLocked(err error) {
	d.logger.Warnw("Geolocation failed", "error", err)
	if errors.Is(err, geolocation.ErrUnsupported) {
		d.notifier.Show(MsgGeolocationUnsupported)
	} else {
		d.notifier.Show(MsgGeolocationFailed)
	}
	d.modal.Open()
}

func (d *Dashboard) OpenModal() {
	d.mu.Lock()
	d.modal.Open()
	d.mu.Unlock()
	d.publish()
}

func (d *Dashboard) InputChanged(text string) {
	d.mu.Lock()
	d.modal.Input(text)
	d.mu.Unlock()
	d.publish()
}

func (d *Dashboard) PickSuggestion(name string) {
	d.mu.Lock()
	d.modal.PickSuggestion(name)
	d.mu.Unlock()
	d.publish()
}

// ConfirmModal submits the dialog input. Blank input is ignored; a validation
// failure is shown in the dialog; success closes it.
func (d *Dashboard) ConfirmModal() {
	d.mu.Lock()
	name, ok := d.modal.Submission()
	if !ok || !d.modal.IsOpen() {
		d.mu.Unlock()
		return
	}
	if err := d.addLocked(name); err != nil {
		msg := ValidationMessage(err)
		if msg == "" {
			msg = MsgUnknownCity
		}
		d.modal.Fail(msg)
	} else {
		d.modal.Close()
	}
	d.mu.Unlock()
	d.publish()
}

func (d *Dashboard) CancelModal() {
	d.mu.Lock()
	d.modal.Close()
	d.mu.Unlock()
	d.publish()
}

func (d *Dashboard) BlurSuggestions() {
	d.mu.Lock()
	d.modal.Blur()
	d.mu.Unlock()
	d.publish()
}

func (d *Dashboard) DismissNotification() {
	d.notifier.Dismiss()
	d.publish()
}

func (d *Dashboard) Suggestions(query string) []string {
	return d.directory.Suggest(query)
}

// Cities returns a copy of the tracked entries and the active index.
func (d *Dashboard) Cities() ([]model.LocationEntry, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Entries(), d.registry.ActiveIndex()
}

// View renders the current state.
func (d *Dashboard) View() render.View {
	d.mu.Lock()
	state := render.State{
		Panel:        d.panel,
		Entries:      d.registry.Entries(),
		ActiveIndex:  d.registry.ActiveIndex(),
		Modal:        d.modal.View(),
		Notification: d.notifier.View(),
		Now:          d.now(),
		ForecastDays: d.forecastDays,
	}
	d.mu.Unlock()
	return render.Render(state)
}

// Subscribe returns a channel that receives a signal after state changes.
// Signals coalesce: a slow reader sees one pending signal, not a backlog.
// The channel is closed by the returned cancel func or by Close.
func (d *Dashboard) Subscribe() (<-chan struct{}, func()) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()

	ch := make(chan struct{}, 1)
	if d.closed {
		close(ch)
		return ch, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subsMu.Lock()
			defer d.subsMu.Unlock()
			if c, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(c)
			}
		})
	}
}

func (d *Dashboard) publish() {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for _, ch := range d.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Wait blocks until in-flight loads and lookups have finished.
func (d *Dashboard) Wait() {
	d.inflight.Wait()
}

// Close cancels outstanding work, waits for it and releases subscribers.
func (d *Dashboard) Close() {
	d.cancel()
	d.notifier.Stop()
	d.inflight.Wait()

	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	d.closed = true
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
	}
}

func (d *Dashboard) persistLocked() {
	if err := d.cities.Save(d.ctx, d.registry.Entries(), d.registry.ActiveIndex()); err != nil {
		d.logger.Errorw("Failed to save cities", "error", err)
	}
}

// fetchLocked starts a load for the active entry. An empty registry clears the
// panel and invalidates any load still in flight.
func (d *Dashboard) fetchLocked() {
	d.token++
	entry, ok := d.registry.Active()
	if !ok {
		d.panel = render.PanelState{Mode: render.PanelIdle}
		return
	}
	token := d.token
	d.panel = render.PanelState{Mode: render.PanelLoading, Entry: entry}

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		snapshot, err := d.weather.GetForecast(d.ctx, entry)
		d.finishFetch(token, entry, snapshot, err)
	}()
}

func (d *Dashboard) finishFetch(token uint64, entry model.LocationEntry, snapshot *model.WeatherSnapshot, err error) {
	d.mu.Lock()
	if token != d.token || d.ctx.Err() != nil {
		d.mu.Unlock()
		d.logger.Debugw("Discarding stale forecast", "location", entry.Label(), "token", token)
		return
	}
	if err != nil {
		d.logger.Errorw("Failed to load forecast", "location", entry.Label(), "error", err)
		d.panel = render.PanelState{Mode: render.PanelError, Entry: entry}
		d.notifier.Show(render.MsgWeatherUnavailable)
	} else {
		d.panel = render.PanelState{Mode: render.PanelWeather, Entry: entry, Snapshot: snapshot}
	}
	d.mu.Unlock()
	d.publish()
}

var _ DashboardInterface = (*Dashboard)(nil)
