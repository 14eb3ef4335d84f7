package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ems/config"
	"ems/internal/core"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/description"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectionEvent is emitted on every connection state transition.
type ConnectionEvent struct {
	State core.ConnectionState
	Err   error
	At    time.Time
}

// MongoClient owns the single MongoDB handle shared by all requests and reports its
// state as "open" / "error" transitions. It never reconnects on its own; the driver's
// topology monitor and the heartbeat job feed it.
type MongoClient struct {
	client      *mongo.Client
	logger      *zap.Logger
	database    string
	pingTimeout time.Duration

	// emitMu serializes transitions with their delivery so listeners see them in order
	emitMu    sync.Mutex
	mu        sync.RWMutex
	state     core.ConnectionState
	lastErr   error
	listeners []func(ConnectionEvent)
}

func NewMongoClient(logger *zap.Logger, config *config.Configuration) (*MongoClient, func(), error) {
	mongoClient := newMongoClient(logger, config)
	client, err := mongoClient.connectDB(config)
	if err != nil {
		logger.Error("failed to connect to MongoDB", zap.Error(err))
		return nil, nil, err
	}
	mongoClient.client = client

	// the first probe runs in the background; a down server is not fatal
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mongoClient.pingTimeout)
		defer cancel()
		_ = mongoClient.Ping(ctx)
	}()

	cleanup := func() {
		logger.Info("closing the MongoDB resources")
		if err := mongoClient.Close(); err != nil {
			logger.Error("failed to close MongoDB client", zap.Error(err))
		}
	}

	return mongoClient, cleanup, nil
}

func newMongoClient(logger *zap.Logger, config *config.Configuration) *MongoClient {
	pingTimeout := 5 * time.Second
	if config.MongoDB.PingTimeoutMs > 0 {
		pingTimeout = time.Duration(config.MongoDB.PingTimeoutMs) * time.Millisecond
	}
	database := config.MongoDB.Database
	if database == "" {
		database = "ems"
	}
	return &MongoClient{
		logger:      logger,
		database:    database,
		pingTimeout: pingTimeout,
		state:       core.ConnectionConnecting,
	}
}

func (m *MongoClient) connectDB(config *config.Configuration) (*mongo.Client, error) {
	return mongo.Connect(context.Background(), m.clientOptions(config))
}

func (m *MongoClient) clientOptions(config *config.Configuration) *options.ClientOptions {
	uri := buildMongoURI(config.MongoDB.URI, config.MongoDB.Options)
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(config.App.Name).
		SetServerMonitor(m.serverMonitor())
	if config.MongoDB.Username != "" {
		opts.SetAuth(options.Credential{
			Username: config.MongoDB.Username,
			Password: config.MongoDB.Password,
		})
	}
	return opts
}

// serverMonitor follows the topology as a whole. The connection is open while a
// writable server exists, so one unreachable secondary does not count as an outage.
// Per-server heartbeats are ignored for the same reason.
func (m *MongoClient) serverMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		TopologyDescriptionChanged: func(e *event.TopologyDescriptionChangedEvent) {
			m.observeTopology(e.NewDescription)
		},
	}
}

var errNoWritableServer = errors.New("no writable server in topology")

// observeTopology runs with the topology locked and must not select a server.
func (m *MongoClient) observeTopology(topology description.Topology) {
	if topology.HasWritableServer() {
		m.record(nil)
		return
	}
	var cause error
	for _, server := range topology.Servers {
		if server.LastError != nil {
			cause = server.LastError
			break
		}
	}
	if cause == nil {
		// still discovering
		return
	}
	m.record(errors.Join(errNoWritableServer, cause))
}

func buildMongoURI(baseURI, optionStr string) string {
	if optionStr == "" {
		return baseURI
	}
	if strings.Contains(baseURI, "?") {
		return baseURI + "&" + optionStr
	}
	if strings.Count(baseURI, "/") < 3 {
		// mongodb://host -> mongodb://host/?opts
		return baseURI + "/?" + optionStr
	}
	return baseURI + "?" + optionStr
}

// OnStateChange registers fn for every later transition. fn runs synchronously and
// must not block.
func (m *MongoClient) OnStateChange(fn func(ConnectionEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// WatchState calls fn with the current state, then with every later transition. No
// transition can slip between the two.
func (m *MongoClient) WatchState(fn func(ConnectionEvent)) {
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	current := ConnectionEvent{State: m.state, Err: m.lastErr, At: time.Now().UTC()}
	m.mu.Unlock()

	fn(current)
}

func (m *MongoClient) State() (core.ConnectionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, m.lastErr
}

// Ping probes the primary and records the outcome.
func (m *MongoClient) Ping(ctx context.Context) error {
	err := m.client.Ping(ctx, nil)
	m.record(err)
	return err
}

// record applies a probe result. Only transitions are logged and published, so a
// steady stream of heartbeats stays quiet.
func (m *MongoClient) record(err error) {
	next := core.ConnectionOpen
	if err != nil {
		next = core.ConnectionError
	}

	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	m.lastErr = err
	if m.state == next {
		m.mu.Unlock()
		return
	}
	m.state = next
	listeners := append([]func(ConnectionEvent){}, m.listeners...)
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("Error in Connecting to Database", zap.String("database", m.database), zap.Error(err))
	} else {
		m.logger.Info("Connected to Database", zap.String("database", m.database))
	}

	ev := ConnectionEvent{State: next, Err: err, At: time.Now().UTC()}
	for _, fn := range listeners {
		fn(ev)
	}
}

func (m *MongoClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *MongoClient) Client() *mongo.Client {
	return m.client
}

func (m *MongoClient) Database() *mongo.Database {
	return m.client.Database(m.database)
}

func (m *MongoClient) DatabaseName() string {
	return m.database
}
