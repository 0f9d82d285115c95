// Package myq runs ad-hoc SQL and ingests JSON records into tables whose
// schema is inferred from the data.
//
// An Engine wraps one sqldb.Client session. ExecuteQuery runs a blob of
// statements and collects their rows; BulkInsert creates the target table on
// first sight and loads a batch of records with a single INSERT.
package myq
