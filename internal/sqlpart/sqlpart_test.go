package sqlpart

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
}

func TestUpdateMapsAndOrdersColumns(t *testing.T) {
	fields := Fields{}.
		Add("firstName", "Aliya").
		Add("age", 32).
		Add("lastName", "Smith")

	clause, err := Update(fields, userColumns)
	require.NoError(t, err)

	assert.Equal(t, `"first_name"=$1, "age"=$2, "last_name"=$3`, clause.SetCols)
	assert.Equal(t, []interface{}{"Aliya", 32, "Smith"}, clause.Values)
	assert.Equal(t, "$4", clause.Next())
}

func TestInsertBuildsParallelLists(t *testing.T) {
	fields := Fields{}.
		Add("title", "Work").
		Add("listType", true)

	clause, err := Insert(fields, map[string]string{"listType": "list_type"})
	require.NoError(t, err)

	assert.Equal(t, `"title", "list_type"`, clause.Columns)
	assert.Equal(t, "$1, $2", clause.Placeholders)
	assert.Equal(t, []interface{}{"Work", true}, clause.Values)
	assert.Equal(t, "$3", clause.Next())
}

func TestEmptyFieldsAreRejected(t *testing.T) {
	_, err := Update(nil, userColumns)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Insert(Fields{}, userColumns)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, "No data", err.Error())
}

func TestClauseCountMatchesFieldCount(t *testing.T) {
	for n := 1; n <= 8; n++ {
		fields := Fields{}
		for i := 0; i < n; i++ {
			fields = fields.Add(fmt.Sprintf("f%d", i), i)
		}

		update, err := Update(fields, nil)
		require.NoError(t, err)
		parts := strings.Split(update.SetCols, ", ")
		require.Len(t, parts, n)
		for i, part := range parts {
			assert.Equal(t, fmt.Sprintf(`"f%d"=$%d`, i, i+1), part)
			assert.Equal(t, i, update.Values[i])
		}

		insert, err := Insert(fields, nil)
		require.NoError(t, err)
		assert.Len(t, strings.Split(insert.Columns, ", "), n)
		assert.Len(t, strings.Split(insert.Placeholders, ", "), n)
		assert.Len(t, insert.Values, n)
	}
}

func TestFieldNames(t *testing.T) {
	fields := Fields{}.Add("b", 1).Add("a", 2)
	assert.Equal(t, []string{"b", "a"}, fields.Names())
}
