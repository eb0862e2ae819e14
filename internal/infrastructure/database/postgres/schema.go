package postgres

// Column mapping for the customers table. Scan order in scanCustomer follows customerColumns.
const (
	customersTable = "customers"

	customerColumns = "id, person_id, password, status, created_at, updated_at"

	personsTable = "persons"
)

const (
	insertCustomerQuery = "INSERT INTO " + customersTable + " (person_id, password, status, created_at, updated_at) " +
		"VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id, created_at, updated_at"

	updateCustomerQuery = "UPDATE " + customersTable + " SET person_id = $1, password = $2, status = $3, updated_at = NOW() " +
		"WHERE id = $4 RETURNING created_at, updated_at"

	selectCustomerByIDQuery = "SELECT " + customerColumns + " FROM " + customersTable + " WHERE id = $1"

	selectCustomerByPersonIDQuery = "SELECT " + customerColumns + " FROM " + customersTable + " WHERE person_id = $1"

	selectAllCustomersQuery = "SELECT " + customerColumns + " FROM " + customersTable + " ORDER BY id ASC"

	selectCustomersByStatusQuery = "SELECT " + customerColumns + " FROM " + customersTable + " WHERE status = $1 ORDER BY id ASC"

	updateCustomerStatusQuery = "UPDATE " + customersTable + " SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING " + customerColumns

	updateCustomerPasswordQuery = "UPDATE " + customersTable + " SET password = $1, updated_at = NOW() WHERE id = $2 RETURNING " + customerColumns

	deleteCustomerQuery = "DELETE FROM " + customersTable + " WHERE id = $1"

	deleteInactiveCustomersQuery = "DELETE FROM " + customersTable + " WHERE status = FALSE AND updated_at < $1"

	personExistsQuery = "SELECT EXISTS(SELECT 1 FROM " + personsTable + " WHERE id = $1)"
)
