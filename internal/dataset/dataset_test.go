package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func toyFiles() map[string]string {
	return map[string]string{
		EntitiesFile:  "0\talice\n1\tbob\n2\tcarol\n",
		RelationsFile: "1\tlikes\n0\tknows\n",
		TrainFile:     "alice\tknows\tbob\nbob\tknows\tcarol\n\nalice\tlikes\tcarol\n",
		ValidFile:     "carol\tknows\talice\r\n",
		TestFile:      "alice\tknows\tcarol\n",
	}
}

func TestLoad(t *testing.T) {
	dir := writeFiles(t, toyFiles())

	g, err := Load(context.Background(), dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol"}, g.Entities)
	assert.Equal(t, []string{"knows", "likes"}, g.Relations)
	assert.Equal(t, []Triple{{0, 0, 1}, {1, 0, 2}, {0, 1, 2}}, g.Train)
	assert.Equal(t, []Triple{{2, 0, 0}}, g.Valid)
	assert.Equal(t, []Triple{{0, 0, 2}}, g.Test)

	id, ok := g.EntityID("carol")
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
	id, ok = g.RelationID("likes")
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestLoad_OptionalSplits(t *testing.T) {
	files := toyFiles()
	delete(files, ValidFile)
	delete(files, TestFile)
	dir := writeFiles(t, files)

	g, err := Load(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Empty(t, g.Valid)
	assert.Empty(t, g.Test)
}

func TestLoad_MissingTrain(t *testing.T) {
	files := toyFiles()
	delete(files, TrainFile)

	_, err := Load(context.Background(), writeFiles(t, files), nil)
	assert.ErrorIs(t, err, ErrNoTrainSplit)

	files = toyFiles()
	files[TrainFile] = "\n"
	_, err = Load(context.Background(), writeFiles(t, files), nil)
	assert.ErrorIs(t, err, ErrNoTrainSplit)
}

func TestLoad_BadInput(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown entity": {TrainFile: "alice\tknows\tdave\n"},
		"wrong fields":   {TrainFile: "alice\tknows\n"},
		"sparse dict":    {EntitiesFile: "0\talice\n1\tbob\n3\tcarol\n"},
		"duplicate id":   {RelationsFile: "0\tknows\n0\tlikes\n"},
		"bad id":         {RelationsFile: "x\tknows\n"},
		"duplicate name": {EntitiesFile: "0\talice\n1\talice\n2\tcarol\n"},
	}
	for name, override := range cases {
		files := toyFiles()
		for k, v := range override {
			files[k] = v
		}
		_, err := Load(context.Background(), writeFiles(t, files), nil)
		assert.Error(t, err, name)
	}

	_, err := Load(context.Background(), t.TempDir(), nil)
	assert.Error(t, err)
}

func TestFilterIndex(t *testing.T) {
	g, err := Load(context.Background(), writeFiles(t, toyFiles()), nil)
	require.NoError(t, err)

	assert.True(t, g.Known(Triple{0, 0, 1}))
	assert.True(t, g.Known(Triple{0, 0, 2}), "test triples are known")
	assert.False(t, g.Known(Triple{1, 1, 0}))

	assert.Equal(t, []int64{1, 2}, g.TrueTails(0, 0))
	assert.Equal(t, []int64{0, 1}, g.TrueHeads(0, 2))
	assert.Empty(t, g.TrueTails(2, 1))
}

func TestNew_Validation(t *testing.T) {
	ents := []string{"a", "b"}
	rels := []string{"r"}

	_, err := New(ents, rels, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoTrainSplit)

	_, err = New(ents, rels, []Triple{{0, 0, 2}}, nil, nil)
	assert.Error(t, err)

	_, err = New(ents, rels, []Triple{{0, 0, 1}}, nil, []Triple{{0, 1, 1}})
	assert.Error(t, err)

	g, err := New(ents, rels, []Triple{{0, 0, 1}, {0, 0, 1}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, g.TrueTails(0, 0))
	assert.Equal(t, 2, g.NumEntities())
	assert.Equal(t, 1, g.NumRelations())
}
