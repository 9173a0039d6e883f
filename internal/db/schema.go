package db

const createSearchesTable = `
CREATE TABLE IF NOT EXISTS searches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    location TEXT NOT NULL,
    category TEXT NOT NULL,
    radius_meters INTEGER NOT NULL,
    result_count INTEGER NOT NULL,
    searched_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_searches_user ON searches(user_id);
`

const createContactsTable = `
CREATE TABLE IF NOT EXISTS contacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    search_id INTEGER NOT NULL,
    place_id TEXT NOT NULL,
    name TEXT,
    address TEXT,
    phone TEXT,
    website TEXT,
    website_live TEXT,
    rating REAL,
    total_ratings INTEGER,
    categories TEXT,
    google_url TEXT,
    UNIQUE(search_id, place_id)
);

CREATE INDEX IF NOT EXISTS idx_contacts_search ON contacts(search_id);
`

const insertSearch = `
INSERT INTO searches (user_id, location, category, radius_meters, result_count)
VALUES (?, ?, ?, ?, ?)
`

const insertContact = `
INSERT OR REPLACE INTO contacts (
    search_id, place_id, name, address, phone, website,
    website_live, rating, total_ratings, categories, google_url
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRecentSearches = `
SELECT id, location, category, radius_meters, result_count, searched_at
FROM searches
ORDER BY searched_at DESC, id DESC
LIMIT ?
`

const selectContactsForSearch = `
SELECT place_id, name, address, phone, website, website_live,
       rating, total_ratings, categories, google_url
FROM contacts
WHERE search_id = ?
ORDER BY id ASC
`

const selectAllContacts = `
SELECT place_id, name, address, phone, website, website_live,
       rating, total_ratings, categories, google_url
FROM contacts
ORDER BY search_id ASC, id ASC
`
