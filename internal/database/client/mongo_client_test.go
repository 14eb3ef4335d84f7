package client

import (
	"errors"
	"testing"

	"ems/config"
	"ems/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/address"
	"go.mongodb.org/mongo-driver/mongo/description"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://localhost:27017", buildMongoURI("mongodb://localhost:27017", ""))
	assert.Equal(t,
		"mongodb+srv://cluster0.example.net/?retryWrites=true&w=majority",
		buildMongoURI("mongodb+srv://cluster0.example.net", "retryWrites=true&w=majority"))
	assert.Equal(t,
		"mongodb://db:27017/ems?w=majority",
		buildMongoURI("mongodb://db:27017/ems", "w=majority"))
	assert.Equal(t,
		"mongodb://db:27017/?appName=x&w=majority",
		buildMongoURI("mongodb://db:27017/?appName=x", "w=majority"))
}

func TestRecordEmitsOnlyTransitions(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	m := newMongoClient(zap.New(obsCore), &config.Configuration{})

	var events []ConnectionEvent
	m.OnStateChange(func(ev ConnectionEvent) { events = append(events, ev) })

	state, _ := m.State()
	assert.Equal(t, core.ConnectionConnecting, state)

	m.record(nil)
	m.record(nil)
	boom := errors.New("server selection timeout")
	m.record(boom)
	m.record(boom)
	m.record(nil)

	require.Len(t, events, 3)
	assert.Equal(t, core.ConnectionOpen, events[0].State)
	assert.Equal(t, core.ConnectionError, events[1].State)
	assert.ErrorIs(t, events[1].Err, boom)
	assert.Equal(t, core.ConnectionOpen, events[2].State)

	assert.Equal(t, 2, logs.FilterMessage("Connected to Database").Len())
	assert.Equal(t, 1, logs.FilterMessage("Error in Connecting to Database").Len())

	state, lastErr := m.State()
	assert.Equal(t, core.ConnectionOpen, state)
	assert.NoError(t, lastErr)
}

func TestNewMongoClientDefaults(t *testing.T) {
	m := newMongoClient(zap.NewNop(), &config.Configuration{})
	assert.Equal(t, "ems", m.DatabaseName())
	assert.Equal(t, "5s", m.pingTimeout.String())

	conf := &config.Configuration{}
	conf.MongoDB.Database = "hr"
	conf.MongoDB.PingTimeoutMs = 250
	m = newMongoClient(zap.NewNop(), conf)
	assert.Equal(t, "hr", m.DatabaseName())
	assert.Equal(t, "250ms", m.pingTimeout.String())
}

func TestClientOptionsUseExternalCredentials(t *testing.T) {
	conf := &config.Configuration{}
	conf.MongoDB.URI = "mongodb://db:27017"
	conf.MongoDB.Username = "svc-ems"
	conf.MongoDB.Password = "from-env"

	m := newMongoClient(zap.NewNop(), conf)
	opts := m.clientOptions(conf)
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "svc-ems", opts.Auth.Username)
	assert.Equal(t, "from-env", opts.Auth.Password)
	assert.NotNil(t, opts.ServerMonitor)

	conf.MongoDB.Username = ""
	assert.Nil(t, m.clientOptions(conf).Auth)
}

func replicaSet(kind description.TopologyKind, servers ...description.Server) *event.TopologyDescriptionChangedEvent {
	return &event.TopologyDescriptionChangedEvent{
		NewDescription: description.Topology{Kind: kind, SetName: "rs0", Servers: servers},
	}
}

func TestUnreachableSecondaryKeepsConnectionOpen(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	m := newMongoClient(zap.New(obsCore), &config.Configuration{})
	monitor := m.serverMonitor()

	var events []ConnectionEvent
	m.OnStateChange(func(ev ConnectionEvent) { events = append(events, ev) })

	primary := description.Server{Addr: address.Address("db-0:27017"), Kind: description.RSPrimary}
	secondary := description.Server{Addr: address.Address("db-1:27017"), Kind: description.RSSecondary}
	down := description.Server{Addr: address.Address("db-2:27017"), LastError: errors.New("connection refused")}

	for i := 0; i < 5; i++ {
		monitor.TopologyDescriptionChanged(replicaSet(description.ReplicaSetWithPrimary, primary, secondary, down))
		monitor.TopologyDescriptionChanged(replicaSet(description.ReplicaSetWithPrimary, primary, down, secondary))
	}

	require.Len(t, events, 1)
	assert.Equal(t, core.ConnectionOpen, events[0].State)
	assert.Equal(t, 1, logs.FilterMessage("Connected to Database").Len())
	assert.Equal(t, 0, logs.FilterMessage("Error in Connecting to Database").Len())
	assert.Nil(t, monitor.ServerHeartbeatFailed)
	assert.Nil(t, monitor.ServerHeartbeatSucceeded)
}

func TestLosingThePrimaryIsAnError(t *testing.T) {
	m := newMongoClient(zap.NewNop(), &config.Configuration{})
	monitor := m.serverMonitor()

	var events []ConnectionEvent
	m.OnStateChange(func(ev ConnectionEvent) { events = append(events, ev) })

	refused := errors.New("connection refused")
	primary := description.Server{Addr: address.Address("db-0:27017"), Kind: description.RSPrimary}
	lostPrimary := description.Server{Addr: address.Address("db-0:27017"), LastError: refused}
	secondary := description.Server{Addr: address.Address("db-1:27017"), Kind: description.RSSecondary}

	monitor.TopologyDescriptionChanged(replicaSet(description.ReplicaSetWithPrimary, primary, secondary))
	monitor.TopologyDescriptionChanged(replicaSet(description.ReplicaSetNoPrimary, lostPrimary, secondary))
	monitor.TopologyDescriptionChanged(replicaSet(description.ReplicaSetNoPrimary, lostPrimary, secondary))

	require.Len(t, events, 2)
	assert.Equal(t, core.ConnectionOpen, events[0].State)
	assert.Equal(t, core.ConnectionError, events[1].State)
	assert.ErrorIs(t, events[1].Err, refused)
	assert.ErrorIs(t, events[1].Err, errNoWritableServer)
}

func TestDiscoveryWithoutErrorsStaysConnecting(t *testing.T) {
	m := newMongoClient(zap.NewNop(), &config.Configuration{})
	monitor := m.serverMonitor()

	monitor.TopologyDescriptionChanged(&event.TopologyDescriptionChangedEvent{
		NewDescription: description.Topology{Servers: []description.Server{{Addr: address.Address("db-0:27017")}}},
	})

	state, err := m.State()
	assert.Equal(t, core.ConnectionConnecting, state)
	assert.NoError(t, err)
}

func TestWatchStateReplaysCurrentState(t *testing.T) {
	m := newMongoClient(zap.NewNop(), &config.Configuration{})
	m.record(nil)

	var events []ConnectionEvent
	m.WatchState(func(ev ConnectionEvent) { events = append(events, ev) })
	m.record(errors.New("server selection timeout"))

	require.Len(t, events, 2)
	assert.Equal(t, core.ConnectionOpen, events[0].State)
	assert.Equal(t, core.ConnectionError, events[1].State)
}
