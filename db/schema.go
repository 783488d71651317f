// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	industry TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	company_id TEXT,
	position TEXT NOT NULL DEFAULT '',
	is_active INTEGER NOT NULL DEFAULT 1,
	membership_status TEXT NOT NULL DEFAULT 'pending' CHECK(membership_status IN ('active', 'inactive', 'pending', 'suspended')),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_users_company_id ON users(company_id);

CREATE TABLE IF NOT EXISTS connections (
	id TEXT PRIMARY KEY,
	requester_id TEXT NOT NULL,
	addressee_id TEXT NOT NULL,
	pair_low TEXT NOT NULL,
	pair_high TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'accepted', 'declined')),
	message TEXT NOT NULL DEFAULT '',
	accepted_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (requester_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (addressee_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_connections_pair ON connections(pair_low, pair_high);
CREATE INDEX IF NOT EXISTS idx_connections_addressee ON connections(addressee_id, status);

CREATE TABLE IF NOT EXISTS meetings (
	id TEXT PRIMARY KEY,
	requester_id TEXT NOT NULL,
	requested_id TEXT NOT NULL,
	pair_low TEXT NOT NULL,
	pair_high TEXT NOT NULL,
	meeting_date DATETIME NOT NULL,
	confirmed_date DATETIME,
	location TEXT NOT NULL DEFAULT '',
	meeting_type TEXT NOT NULL DEFAULT 'in_person' CHECK(meeting_type IN ('in_person', 'virtual', 'phone')),
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'accepted', 'declined', 'completed', 'cancelled')),
	purpose TEXT NOT NULL,
	agenda TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	requester_notes TEXT NOT NULL DEFAULT '',
	requested_notes TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high', 'urgent')),
	accepted_at DATETIME,
	completed_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (requester_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (requested_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_meetings_pending_pair ON meetings(pair_low, pair_high) WHERE status = 'pending';
CREATE INDEX IF NOT EXISTS idx_meetings_requester ON meetings(requester_id);
CREATE INDEX IF NOT EXISTS idx_meetings_requested ON meetings(requested_id);
CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings(meeting_date DESC);

CREATE TABLE IF NOT EXISTS referral_cards (
	id TEXT PRIMARY KEY,
	meeting_id TEXT NOT NULL,
	from_user_id TEXT NOT NULL,
	to_user_id TEXT NOT NULL,
	referral_date DATE NOT NULL,
	referral_description TEXT NOT NULL,
	referral_type TEXT NOT NULL DEFAULT 'external' CHECK(referral_type IN ('internal', 'external')),
	contact_name TEXT NOT NULL DEFAULT '',
	contact_phone TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	contact_address TEXT NOT NULL DEFAULT '',
	comments TEXT NOT NULL DEFAULT '',
	interest_level TEXT NOT NULL DEFAULT 'medium' CHECK(interest_level IN ('very_low', 'low', 'medium', 'high', 'very_high')),
	status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'sent', 'received', 'completed')),
	follow_up_actions TEXT NOT NULL DEFAULT '[]',
	sent_at DATETIME,
	received_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE,
	FOREIGN KEY (from_user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (to_user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_referral_cards_meeting ON referral_cards(meeting_id);
CREATE INDEX IF NOT EXISTS idx_referral_cards_from ON referral_cards(from_user_id, status);
CREATE INDEX IF NOT EXISTS idx_referral_cards_to ON referral_cards(to_user_id, status);

CREATE TABLE IF NOT EXISTS recommendations (
	id TEXT PRIMARY KEY,
	recommender_id TEXT NOT NULL,
	recommended_to_id TEXT NOT NULL,
	recommended_user_id TEXT NOT NULL,
	recommendation_date DATE NOT NULL,
	business_description TEXT NOT NULL,
	why_recommended TEXT NOT NULL,
	recommendation_type TEXT NOT NULL DEFAULT 'business_opportunity' CHECK(recommendation_type IN ('business_opportunity', 'service_provider', 'potential_client', 'partnership', 'other')),
	priority_level TEXT NOT NULL DEFAULT 'medium' CHECK(priority_level IN ('low', 'medium', 'high', 'urgent')),
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'contacted', 'meeting_scheduled', 'business_done', 'not_interested', 'no_response')),
	follow_up_notes TEXT NOT NULL DEFAULT '',
	outcome_notes TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	is_mutual INTEGER NOT NULL DEFAULT 0,
	estimated_value INTEGER,
	contacted_at DATETIME,
	completed_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	CHECK(recommender_id <> recommended_to_id AND recommender_id <> recommended_user_id AND recommended_to_id <> recommended_user_id),
	FOREIGN KEY (recommender_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (recommended_to_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (recommended_user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_recommendations_recommender ON recommendations(recommender_id);
CREATE INDEX IF NOT EXISTS idx_recommendations_to ON recommendations(recommended_to_id, status);
CREATE INDEX IF NOT EXISTS idx_recommendations_user ON recommendations(recommended_user_id);

CREATE TABLE IF NOT EXISTS follow_ups (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	met_with_user_id TEXT NOT NULL,
	invited_by_user_id TEXT,
	group_name TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL,
	meeting_date DATE NOT NULL,
	conversation_topics TEXT NOT NULL,
	meeting_type TEXT NOT NULL DEFAULT 'one_to_one' CHECK(meeting_type IN ('one_to_one', 'group_meeting', 'coffee_chat', 'business_lunch', 'other')),
	duration_minutes INTEGER,
	outcome TEXT NOT NULL DEFAULT 'good' CHECK(outcome IN ('excellent', 'good', 'average', 'poor', 'no_show')),
	follow_up_actions TEXT NOT NULL DEFAULT '',
	business_opportunities TEXT NOT NULL DEFAULT '',
	referrals_given TEXT NOT NULL DEFAULT '',
	referrals_received TEXT NOT NULL DEFAULT '',
	future_meeting_planned INTEGER NOT NULL DEFAULT 0,
	next_meeting_date DATE,
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'completed' CHECK(status IN ('draft', 'completed', 'follow_up_pending')),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (met_with_user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (invited_by_user_id) REFERENCES users(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_user ON follow_ups(user_id, status);
CREATE INDEX IF NOT EXISTS idx_follow_ups_met_with ON follow_ups(met_with_user_id);

CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	actor_id TEXT NOT NULL,
	action TEXT NOT NULL,
	from_status TEXT NOT NULL DEFAULT '',
	to_status TEXT NOT NULL DEFAULT '',
	occurred_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_log_entity ON activity_log(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_activity_log_actor ON activity_log(actor_id, occurred_at DESC);

CREATE TABLE IF NOT EXISTS calendar_exports (
	meeting_id TEXT PRIMARY KEY,
	calendar_id TEXT NOT NULL,
	event_id TEXT NOT NULL,
	exported_at DATETIME NOT NULL,
	FOREIGN KEY (meeting_id) REFERENCES meetings(id) ON DELETE CASCADE
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
