package csvfile

import "github.com/gbanking/gbanking/internal/models"

// LookupCredential scans users.csv for the first row matching name. Rows
// without a Salt column value parse as legacy digests.
func (s *Store) LookupCredential(name string) (models.Credential, bool, error) {
	rows, err := readRows(s.path(usersFile))
	if err != nil {
		return models.Credential{}, false, err
	}
	for _, row := range rows {
		if row["Name"] != name {
			continue
		}
		cred := models.Credential{
			Name:   name,
			Digest: models.ParseDigest(row["Salt"], row["HashedPIN"]),
		}
		return cred, true, nil
	}
	return models.Credential{}, false, nil
}

// AppendCredential adds one credential row. Uniqueness is the caller's
// responsibility; the file itself is append-only.
func (s *Store) AppendCredential(cred models.Credential) error {
	salt, hash := cred.Digest.Columns()
	return appendRow(s.path(usersFile), usersHeader, []string{cred.Name, salt, hash})
}
