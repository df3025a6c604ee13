package services

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/fredcamaral/slidecast/internal/domain/entities"
	"github.com/fredcamaral/slidecast/internal/domain/ports"
)

type MockOutlineParser struct {
	mock.Mock
}

func (m *MockOutlineParser) Parse(text string) *entities.Document {
	args := m.Called(text)
	return args.Get(0).(*entities.Document)
}

type MockOutlineFormatter struct {
	mock.Mock
}

func (m *MockOutlineFormatter) Format(doc *entities.Document) string {
	args := m.Called(doc)
	return args.String(0)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Load(ctx context.Context, path string) (*entities.Document, error) {
	args := m.Called(ctx, path)
	if doc := args.Get(0); doc != nil {
		return doc.(*entities.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentStore) Save(ctx context.Context, path string, doc *entities.Document) error {
	args := m.Called(ctx, path, doc)
	return args.Error(0)
}

type MockThemeLoader struct {
	mock.Mock
}

func (m *MockThemeLoader) Load(ctx context.Context, name string) (*entities.Theme, error) {
	args := m.Called(ctx, name)
	if theme := args.Get(0); theme != nil {
		return theme.(*entities.Theme), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThemeLoader) List(ctx context.Context) ([]entities.ThemeInfo, error) {
	args := m.Called(ctx)
	if themes := args.Get(0); themes != nil {
		return themes.([]entities.ThemeInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockThemeLoader) Exists(ctx context.Context, name string) bool {
	args := m.Called(ctx, name)
	return args.Bool(0)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, doc *entities.Document, opts entities.RenderOptions) ([]byte, error) {
	args := m.Called(ctx, doc, opts)
	if html := args.Get(0); html != nil {
		return html.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFileWriter struct {
	mock.Mock
}

func (m *MockFileWriter) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

type MockTimelineReader struct {
	mock.Mock
}

func (m *MockTimelineReader) ReadTimeline(markupPath string) ([]entities.SlideTiming, error) {
	args := m.Called(markupPath)
	if timeline := args.Get(0); timeline != nil {
		return timeline.([]entities.SlideTiming), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCaptureDriver struct {
	mock.Mock
}

func (m *MockCaptureDriver) Capture(ctx context.Context, markupPath string, timings []float64, opts entities.CaptureOptions) ([]entities.Frame, error) {
	args := m.Called(ctx, markupPath, timings, opts)
	if frames := args.Get(0); frames != nil {
		return frames.([]entities.Frame), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockVideoEncoder struct {
	mock.Mock
}

func (m *MockVideoEncoder) Check() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockVideoEncoder) Encode(ctx context.Context, frames []entities.Frame, opts entities.EncodeOptions, outPath string) error {
	args := m.Called(ctx, frames, opts, outPath)
	return args.Error(0)
}

type MockHandoutExporter struct {
	mock.Mock
}

func (m *MockHandoutExporter) Export(ctx context.Context, doc *entities.Document, outPath string) error {
	args := m.Called(ctx, doc, outPath)
	return args.Error(0)
}

type MockFileWatcher struct {
	mock.Mock
}

func (m *MockFileWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	args := m.Called(ctx, path)
	if ch := args.Get(0); ch != nil {
		return ch.(<-chan ports.FileChangeEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileWatcher) Stop() error {
	args := m.Called()
	return args.Error(0)
}

type MockHTTPServer struct {
	mock.Mock
}

func (m *MockHTTPServer) Start(ctx context.Context, port int, host string) error {
	args := m.Called(ctx, port, host)
	return args.Error(0)
}

func (m *MockHTTPServer) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHTTPServer) SetDeck(deck *entities.Deck) {
	m.Called(deck)
}

func (m *MockHTTPServer) NotifyClients(event ports.UpdateEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockHTTPServer) IsRunning() bool {
	args := m.Called()
	return args.Bool(0)
}

type MockDeckBuilder struct {
	mock.Mock
}

func (m *MockDeckBuilder) BuildDeck(ctx context.Context, sourcePath string, liveReload bool) (*entities.Deck, error) {
	args := m.Called(ctx, sourcePath, liveReload)
	if deck := args.Get(0); deck != nil {
		return deck.(*entities.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockConfigLoader struct {
	mock.Mock
}

func (m *MockConfigLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	args := m.Called(ctx)
	if config := args.Get(0); config != nil {
		return config.(*entities.Config), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConfigLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	args := m.Called(ctx, dir)
	if config := args.Get(0); config != nil {
		return config.(*entities.Config), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConfigLoader) LoadFile(ctx context.Context, path string) (*entities.Config, error) {
	args := m.Called(ctx, path)
	if config := args.Get(0); config != nil {
		return config.(*entities.Config), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConfigLoader) CreateDefaults(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockConfigLoader) GetGlobalPath() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConfigLoader) GetLocalPath(dir string) string {
	args := m.Called(dir)
	return args.String(0)
}

type MockConfigMerger struct {
	mock.Mock
}

func (m *MockConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	args := m.Called(configs)
	return args.Get(0).(*entities.Config)
}

func (m *MockConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	args := m.Called(config, flags)
	return args.Get(0).(*entities.Config)
}

func (m *MockConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	args := m.Called(config)
	return args.Get(0).(*entities.Config)
}
